package primitives

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/mssola/useragent"
)

// OperatingSystems lists the OS labels a persona may report.
var OperatingSystems = []string{"Windows 10", "Windows 11", "macOS Sonoma", "Ubuntu 22.04", "Android 14", "iOS 17"}

var userAgentTemplates = map[string]string{
	"Windows 10":   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Safari/537.36",
	"Windows 11":   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Safari/537.36 Edg/%[1]d.0.0.0",
	"macOS Sonoma": "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Safari/537.36",
	"Ubuntu 22.04": "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:%d.0) Gecko/20100101 Firefox/%[1]d.0",
	"Android 14":   "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Mobile Safari/537.36",
	"iOS 17":       "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.%d",
}

// OperatingSystem draws an OS label.
func OperatingSystem(rng *rand.Rand) string {
	return OperatingSystems[rng.IntN(len(OperatingSystems))]
}

// UserAgent renders a browser user agent consistent with os. Unknown labels
// fall back to a desktop Chrome string.
func UserAgent(rng *rand.Rand, os string) string {
	tmpl, ok := userAgentTemplates[os]
	if !ok {
		tmpl = userAgentTemplates["Windows 10"]
	}
	return fmt.Sprintf(tmpl, 110+rng.IntN(20))
}

// OSFromUserAgent reports a short OS label parsed from a user agent string.
// It returns an empty string when nothing can be recognised.
func OSFromUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return ""
	}
	info := useragent.New(ua).OSInfo()
	major := info.Version
	if i := strings.IndexAny(major, "._"); i >= 0 {
		major = major[:i]
	}
	switch {
	case strings.Contains(info.Name, "Windows"):
		return strings.TrimSpace("Windows " + major)
	case strings.Contains(info.Name, "Android"):
		return strings.TrimSpace("Android " + major)
	case strings.Contains(info.Name, "iPhone"), strings.Contains(info.Name, "iPad"):
		return strings.TrimSpace("iOS " + major)
	case strings.Contains(info.Name, "Mac OS"):
		return "macOS"
	case strings.Contains(ua, "Ubuntu"):
		return "Ubuntu"
	case strings.Contains(info.Name, "Linux"):
		return "Linux"
	}
	return info.FullName
}
