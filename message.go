package tempmail

import (
	"time"

	"github.com/tempmail/client-go/internal/api"
)

// TimestampLayout is the time layout of message dates.
const TimestampLayout = api.TimestampLayout

// InboxSummary is one entry of an inbox listing. It carries no body.
type InboxSummary struct {
	ID      int    `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	// Date is the service's local wall-clock time. The location is UTC only
	// as a carrier; no zone conversion was applied.
	Date time.Time `json:"date"`
}

// Message is a full message fetched by id.
type Message struct {
	ID          int          `json:"id"`
	From        string       `json:"from"`
	Subject     string       `json:"subject"`
	Date        time.Time    `json:"date"`
	Attachments []Attachment `json:"attachments"`
	Body        string       `json:"body"`
	TextBody    string       `json:"textBody"`
	HTMLBody    string       `json:"htmlBody"`
}

// Attachment describes a file attached to a Message. Use
// Client.DownloadAttachment with the message id and Filename to fetch it.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Attachment returns the attachment named filename.
func (m *Message) Attachment(filename string) (Attachment, bool) {
	for _, a := range m.Attachments {
		if a.Filename == filename {
			return a, true
		}
	}
	return Attachment{}, false
}

// HasAttachments reports whether the message lists any attachment.
func (m *Message) HasAttachments() bool {
	return len(m.Attachments) > 0
}

// ParseTimestamp parses a date in the service's "YYYY-MM-DD HH:MM:SS" format.
// Any deviation fails with ErrMalformedTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return api.ParseTimestamp(s)
}

func newInboxSummaries(raw []api.MessageSummary) []InboxSummary {
	summaries := make([]InboxSummary, 0, len(raw))
	for _, r := range raw {
		summaries = append(summaries, InboxSummary{
			ID:      r.ID,
			From:    r.From,
			Subject: r.Subject,
			Date:    r.Date.Time,
		})
	}
	return summaries
}

func newMessage(raw *api.Message) *Message {
	attachments := make([]Attachment, 0, len(raw.Attachments))
	for _, a := range raw.Attachments {
		attachments = append(attachments, Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return &Message{
		ID:          raw.ID,
		From:        raw.From,
		Subject:     raw.Subject,
		Date:        raw.Date.Time,
		Attachments: attachments,
		Body:        raw.Body,
		TextBody:    raw.TextBody,
		HTMLBody:    raw.HTMLBody,
	}
}
