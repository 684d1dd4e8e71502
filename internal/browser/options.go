package browser

import (
	"github.com/FranksOps/serpscrape/pkg/useragent"
)

// Options are pass-through directives for the browser process. None of them
// affect extraction.
type Options struct {
	// ExecPath pins the browser executable. Empty searches the usual
	// Chrome/Chromium install locations.
	ExecPath                 string `yaml:"exec_path"`
	Headless                 bool   `yaml:"headless"`
	StartMaximized           bool   `yaml:"start_maximized"`
	DisableAutomationSignals bool   `yaml:"disable_automation_signals"`
	DisableExtensions        bool   `yaml:"disable_extensions"`
	DisableGPU               bool   `yaml:"disable_gpu"`
	NoSandbox                bool   `yaml:"no_sandbox"`
	// UserAgent is empty for the browser default, "random" for a pick from
	// the UA pool, or a literal User-Agent string.
	UserAgent string `yaml:"user_agent"`
	// ProxyServer is a single static proxy, e.g. "socks5://127.0.0.1:1080".
	ProxyServer string `yaml:"proxy_server"`
}

// DefaultOptions launches a visible, maximized browser with automation
// signals suppressed.
func DefaultOptions() Options {
	return Options{
		StartMaximized:           true,
		DisableAutomationSignals: true,
		DisableExtensions:        true,
		DisableGPU:               true,
		NoSandbox:                true,
	}
}

// chromeFlag is one Chrome command-line switch. A true bool renders as a
// bare switch.
type chromeFlag struct {
	name  string
	value any
}

// flags translates opts into Chrome switches, in a stable order.
func (o Options) flags(pool *useragent.Pool) []chromeFlag {
	fs := []chromeFlag{
		{"no-first-run", true},
		{"no-default-browser-check", true},
	}
	if o.Headless {
		fs = append(fs, chromeFlag{"headless", true}, chromeFlag{"hide-scrollbars", true}, chromeFlag{"mute-audio", true})
	}
	if o.StartMaximized {
		fs = append(fs, chromeFlag{"start-maximized", true})
	}
	if o.DisableAutomationSignals {
		fs = append(fs, chromeFlag{"disable-blink-features", "AutomationControlled"})
	}
	if o.DisableExtensions {
		fs = append(fs, chromeFlag{"disable-extensions", true})
	}
	if o.DisableGPU {
		fs = append(fs, chromeFlag{"disable-gpu", true})
	}
	if o.NoSandbox {
		fs = append(fs, chromeFlag{"no-sandbox", true})
	}
	if pool != nil {
		if ua := pool.Resolve(o.UserAgent); ua != "" {
			fs = append(fs, chromeFlag{"user-agent", ua})
		}
	}
	if o.ProxyServer != "" {
		fs = append(fs, chromeFlag{"proxy-server", o.ProxyServer})
	}
	return fs
}
