package tracking

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var hrefPattern = regexp.MustCompile(`href="(https?://[^"]+)"`)

// NewInjector returns a message decorator that appends the open pixel and
// rewrites every absolute link through the click endpoint. An empty baseURL
// yields nil, which disables tracking injection entirely.
func NewInjector(baseURL string) func(html, campaignID, logID string) string {
	if baseURL == "" {
		return nil
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return func(html, campaignID, logID string) string {
		html = hrefPattern.ReplaceAllStringFunc(html, func(match string) string {
			target := hrefPattern.FindStringSubmatch(match)[1]
			if strings.HasPrefix(target, baseURL) {
				return match
			}
			return fmt.Sprintf(`href="%s/track/click/%s?url=%s"`, baseURL, logID, url.QueryEscape(target))
		})

		pixel := fmt.Sprintf(`<img src="%s/track/open/%s" width="1" height="1" alt="" style="display:none">`, baseURL, logID)
		if i := strings.LastIndex(html, "</body>"); i >= 0 {
			return html[:i] + pixel + html[i:]
		}
		return html + pixel
	}
}
