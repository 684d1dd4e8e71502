package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/FranksOps/serpscrape/internal/config"
	"github.com/FranksOps/serpscrape/internal/storage"
	"github.com/FranksOps/serpscrape/internal/storage/csvbackend"
	"github.com/FranksOps/serpscrape/internal/storage/jsonbackend"
	"github.com/FranksOps/serpscrape/internal/storage/xlsxbackend"
)

const prompt = "Enter your search query: "

// readQuery prompts on w and returns the first line of r with surrounding
// whitespace removed. End of input without a newline is not an error.
func readQuery(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// openBackend picks the exporter for the configured output format.
func openBackend(out config.OutputConfig) (storage.Backend, error) {
	switch format := out.ResolvedFormat(); format {
	case config.FormatCSV:
		return csvbackend.New(out.Path), nil
	case config.FormatJSON:
		return jsonbackend.New(out.Path), nil
	case config.FormatXLSX:
		return xlsxbackend.New(out.Path), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
