package ai

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// emailShell is the responsive wrapper every generated campaign is rendered
// into. Inline styles only; email clients ignore stylesheets.
const emailShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f4f7;padding:24px 0;">
<tr><td align="center">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
<tr><td style="padding:32px 40px 16px 40px;">
<h1 style="margin:0;font-size:24px;color:#1a1a2e;">%%TITLE%%</h1>
</td></tr>
<tr><td style="padding:0 40px 24px 40px;font-size:15px;line-height:1.6;color:#444444;">
%%BODY%%
</td></tr>
<tr><td style="padding:0 40px 32px 40px;" align="center">
<a href="%%CTA_LINK%%" style="display:inline-block;padding:12px 32px;background-color:#4361ee;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:bold;">%%CTA_TEXT%%</a>
</td></tr>
<tr><td style="padding:16px 40px;background-color:#fafafa;font-size:12px;color:#999999;" align="center">
%%COMPANY%%
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

// sanitizer strips scripts and event handlers from model output while keeping
// the basic formatting tags the prompt allows.
var sanitizer = bluemonday.UGCPolicy()

// BuildHTML renders a generated template into the email shell. The model's
// body is sanitized; everything else in the shell is our own markup.
func BuildHTML(tpl *Template, ctaLink, company string) string {
	if ctaLink == "" {
		ctaLink = "#"
	}
	r := strings.NewReplacer(
		"%%TITLE%%", sanitizer.Sanitize(tpl.Title),
		"%%BODY%%", sanitizer.Sanitize(tpl.Body),
		"%%CTA_TEXT%%", sanitizer.Sanitize(tpl.CTAText),
		"%%CTA_LINK%%", ctaLink,
		"%%COMPANY%%", company,
	)
	return r.Replace(emailShell)
}
