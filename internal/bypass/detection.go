package bypass

import (
	"net/url"
	"strings"
)

// Page is a rendered snapshot of the browser's current document.
type Page struct {
	URL  string
	HTML string
}

// Detector examines a rendered page to determine if an interstitial
// (captcha, consent wall, bot challenge) is standing in front of the results.
type Detector func(p Page) (detected bool, source string)

// DefaultDetectors returns the standard list of interstitial detectors.
func DefaultDetectors() []Detector {
	return []Detector{
		detectGoogleSorry,
		detectRecaptcha,
		detectConsentWall,
		detectCloudflare,
	}
}

// Analyze runs the page through all provided detectors and returns the
// source of the first one that triggers.
func Analyze(p Page, detectors []Detector) (bool, string) {
	for _, d := range detectors {
		if detected, source := d(p); detected {
			return true, source
		}
	}
	return false, ""
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	return strings.ToLower(u.Hostname()), u.Path
}

// detectGoogleSorry looks for the "unusual traffic" block page.
func detectGoogleSorry(p Page) (bool, string) {
	if _, path := splitURL(p.URL); strings.HasPrefix(path, "/sorry/") {
		return true, "GoogleSorry"
	}
	if strings.Contains(p.HTML, `id="captcha-form"`) ||
		strings.Contains(p.HTML, "Our systems have detected unusual traffic") {
		return true, "GoogleSorry"
	}
	return false, ""
}

// detectRecaptcha looks for an embedded reCAPTCHA widget.
func detectRecaptcha(p Page) (bool, string) {
	if strings.Contains(p.HTML, "g-recaptcha") ||
		strings.Contains(p.HTML, "www.google.com/recaptcha/") ||
		strings.Contains(p.HTML, "www.recaptcha.net/recaptcha/") {
		return true, "reCAPTCHA"
	}
	return false, ""
}

// detectConsentWall looks for the cookie consent interstitial shown in some regions.
func detectConsentWall(p Page) (bool, string) {
	if host, _ := splitURL(p.URL); strings.HasPrefix(host, "consent.") {
		return true, "ConsentWall"
	}
	if strings.Contains(p.HTML, "consent.google.com") && strings.Contains(p.HTML, "Before you continue") {
		return true, "ConsentWall"
	}
	return false, ""
}

// detectCloudflare looks for common Cloudflare challenge signatures.
func detectCloudflare(p Page) (bool, string) {
	if strings.Contains(p.HTML, "cf-browser-verification") ||
		strings.Contains(p.HTML, "cf-turnstile") ||
		strings.Contains(p.HTML, "challenges.cloudflare.com") ||
		strings.Contains(p.HTML, "Attention Required! | Cloudflare") {
		return true, "Cloudflare"
	}
	return false, ""
}
