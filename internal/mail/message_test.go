package mail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/invite"
)

func TestBuildMessageStructure(t *testing.T) {
	env, err := BuildMessage(Message{
		From:     "sender@example.com",
		FromName: "Campaign Bot",
		To:       "alice@example.com",
		Subject:  "Hello",
		HTMLBody: "<p>Hi there</p>",
	})
	require.NoError(t, err)

	raw := string(env.Raw)
	assert.Equal(t, "sender@example.com", env.From)
	assert.Equal(t, []string{"alice@example.com"}, env.Recipients)
	assert.Contains(t, raw, "Content-Type: multipart/mixed;")
	assert.Contains(t, raw, "Content-Type: multipart/alternative;")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, raw, "Hi there")
}

func TestBuildMessageBCCNeverInHeaders(t *testing.T) {
	env, err := BuildMessage(Message{
		From:     "sender@example.com",
		To:       "alice@example.com",
		CC:       "cc@example.com",
		BCC:      "hidden@example.com",
		Subject:  "Hello",
		HTMLBody: "<p>body</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com", "cc@example.com", "hidden@example.com"}, env.Recipients)

	headers, _, found := strings.Cut(string(env.Raw), "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, headers, "Cc: cc@example.com")
	assert.NotContains(t, headers, "hidden@example.com")
	// The address must not leak anywhere in the message, not just headers.
	assert.NotContains(t, string(env.Raw), "hidden@example.com")
}

func TestBuildMessageAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-fake"), 0o644))

	env, err := BuildMessage(Message{
		From:            "sender@example.com",
		To:              "alice@example.com",
		Subject:         "With attachment",
		HTMLBody:        "<p>see attached</p>",
		AttachmentPaths: []string{path},
	})
	require.NoError(t, err)

	raw := string(env.Raw)
	assert.Contains(t, raw, `Content-Disposition: attachment; filename="report.pdf"`)
	assert.Contains(t, raw, "Content-Transfer-Encoding: base64")
}

func TestBuildMessageUnreadableAttachmentSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(good, []byte("notes"), 0o644))

	env, err := BuildMessage(Message{
		From:            "sender@example.com",
		To:              "alice@example.com",
		Subject:         "Partial attachments",
		HTMLBody:        "<p>body</p>",
		AttachmentPaths: []string{filepath.Join(dir, "does-not-exist.bin"), good},
	})
	require.NoError(t, err, "unreadable attachment must not abort the build")

	raw := string(env.Raw)
	assert.Contains(t, raw, `filename="notes.txt"`)
	assert.NotContains(t, raw, "does-not-exist.bin")
}

func TestBuildMessageInvitePart(t *testing.T) {
	payload, err := invite.Generate(invite.Input{
		Title:         "Sync",
		Start:         time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		Organizer:     "sender@example.com",
		AttendeeEmail: "alice@example.com",
	})
	require.NoError(t, err)

	env, err := BuildMessage(Message{
		From:     "sender@example.com",
		To:       "alice@example.com",
		Subject:  "Meeting",
		HTMLBody: "<p>invite attached</p>",
		Invite:   payload,
	})
	require.NoError(t, err)

	raw := string(env.Raw)
	assert.Contains(t, raw, "Content-Type: text/calendar; charset=UTF-8; method=REQUEST")
	assert.Contains(t, raw, `filename="invite.ics"`)
}

func TestBuildMessageRequiresAddresses(t *testing.T) {
	_, err := BuildMessage(Message{To: "alice@example.com"})
	assert.Error(t, err)
	_, err = BuildMessage(Message{From: "sender@example.com"})
	assert.Error(t, err)
}
