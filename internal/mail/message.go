package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/invite"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
)

// Message describes one outgoing email before MIME encoding.
//
// CC lands in both the Cc header and the envelope recipient list. BCC lands
// only in the envelope recipient list, so no header ever exposes it to the
// other recipients.
type Message struct {
	From     string
	FromName string
	To       string
	CC       string
	BCC      string
	Subject  string
	HTMLBody string

	// AttachmentPaths are read at build time. A path that cannot be read is
	// logged and skipped; it never aborts the build.
	AttachmentPaths []string

	// Invite, when set, is attached as a text/calendar METHOD:REQUEST part
	// so mail clients render Accept/Decline actions instead of a plain file.
	Invite *invite.Payload
}

// Envelope is a transport-ready message: the SMTP sender address, the full
// recipient list (including BCC), and the raw RFC 5322 bytes.
type Envelope struct {
	From       string
	Recipients []string
	Raw        []byte
}

// BuildMessage encodes msg as multipart/mixed wrapping a
// multipart/alternative HTML part plus any attachment parts.
func BuildMessage(msg Message) (*Envelope, error) {
	if msg.From == "" || msg.To == "" {
		return nil, fmt.Errorf("message requires from and to addresses")
	}

	recipients := []string{msg.To}
	if msg.CC != "" {
		recipients = append(recipients, msg.CC)
	}
	if msg.BCC != "" {
		recipients = append(recipients, msg.BCC)
	}

	mixedBoundary := "mixed_" + uuid.New().String()[:16]
	altBoundary := "alt_" + uuid.New().String()[:16]

	var buf bytes.Buffer
	header := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteString("\r\n")
	}

	from := msg.From
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", msg.FromName), msg.From)
	}
	header("From: %s", from)
	header("To: %s", msg.To)
	if msg.CC != "" {
		header("Cc: %s", msg.CC)
	}
	header("Subject: %s", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date: %s", time.Now().Format(time.RFC1123Z))
	header("Message-ID: <%s@campaign>", uuid.New().String())
	header("MIME-Version: 1.0")
	header("Content-Type: multipart/mixed; boundary=%q", mixedBoundary)
	header("")

	// Alternative container with the HTML body.
	header("--%s", mixedBoundary)
	header("Content-Type: multipart/alternative; boundary=%q", altBoundary)
	header("")
	header("--%s", altBoundary)
	header("Content-Type: text/html; charset=UTF-8")
	header("Content-Transfer-Encoding: quoted-printable")
	header("")
	qp := quotedprintable.NewWriter(&buf)
	qp.Write([]byte(msg.HTMLBody))
	qp.Close()
	header("")
	header("--%s--", altBoundary)

	for _, path := range msg.AttachmentPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("attachment read failed, skipping", "path", path, "error", err)
			continue
		}
		header("--%s", mixedBoundary)
		header("Content-Type: application/octet-stream")
		header("Content-Transfer-Encoding: base64")
		header("Content-Disposition: attachment; filename=%q", filepath.Base(path))
		header("")
		writeBase64(&buf, data)
	}

	if msg.Invite != nil {
		header("--%s", mixedBoundary)
		header("Content-Type: text/calendar; charset=UTF-8; method=REQUEST; name=\"invite.ics\"")
		header("Content-Transfer-Encoding: base64")
		header("Content-Disposition: attachment; filename=\"invite.ics\"")
		header("")
		writeBase64(&buf, msg.Invite.ICS)
	}

	header("--%s--", mixedBoundary)

	return &Envelope{From: msg.From, Recipients: recipients, Raw: buf.Bytes()}, nil
}

// writeBase64 writes data base64-encoded in 76-character lines per RFC 2045.
func writeBase64(buf *bytes.Buffer, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")
}
