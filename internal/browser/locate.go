package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrBrowserNotFound is returned when no usable Chrome or Chromium
// executable can be located.
var ErrBrowserNotFound = errors.New("browser: chrome executable not found")

// executableNames are searched on PATH, in order.
var executableNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// wellKnownPaths cover installs that are usually not on PATH.
var wellKnownPaths = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// ResolveExecPath returns a runnable browser executable. An explicit path
// must exist and be executable; otherwise PATH and the well-known install
// locations are searched.
func ResolveExecPath(explicit string) (string, error) {
	if explicit != "" {
		if err := checkExecutable(explicit); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrBrowserNotFound, explicit, err)
		}
		return explicit, nil
	}

	for _, name := range executableNames {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	for _, p := range wellKnownPaths {
		if checkExecutable(p) == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: searched %v on PATH", ErrBrowserNotFound, executableNames)
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New("is a directory")
	}
	if info.Mode().Perm()&0111 == 0 {
		return errors.New("not executable")
	}
	return nil
}
