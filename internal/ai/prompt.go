package ai

import (
	"fmt"
	"time"
)

// MeetingPrompt builds the generation prompt for a meeting invitation email.
func MeetingPrompt(title string, start, end time.Time, notes string) string {
	if notes == "" {
		notes = "None"
	}
	duration := int(end.Sub(start).Minutes())
	return fmt.Sprintf(
		`You are an executive assistant writing a concise, professional meeting invitation message.

Meeting: %s
When: %s at %s - %s (%d minutes)
Notes: %s

Write the email body only. Do not include sign-offs or script tags. Keep it friendly and clear.`,
		title,
		start.Format("Monday, January 2, 2006"),
		start.Format("3:04 PM"),
		end.Format("3:04 PM"),
		duration,
		notes,
	)
}

// CampaignPrompt builds the generation prompt for a promotional campaign.
func CampaignPrompt(product, audience, goal string) string {
	return fmt.Sprintf(
		`Write a marketing email promoting %s to %s. The goal of the email is: %s.
Address the reader as {{ name }} so the greeting can be personalized per recipient.`,
		product, audience, goal,
	)
}
