package api

import "encoding/json"

// MessageSummary is one entry of the getMessages response.
type MessageSummary struct {
	ID      int       `json:"id"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Date    Timestamp `json:"date"`
}

// Message is the readMessage response.
type Message struct {
	ID          int          `json:"id"`
	From        string       `json:"from"`
	Subject     string       `json:"subject"`
	Date        Timestamp    `json:"date"`
	Attachments []Attachment `json:"attachments"`
	Body        string       `json:"body"`
	TextBody    string       `json:"textBody"`
	HTMLBody    string       `json:"htmlBody"`
}

// UnmarshalJSON accepts both camelCase and snake_case body field names.
func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	var aux struct {
		plain
		TextBodySnake *string `json:"text_body"`
		HTMLBodySnake *string `json:"html_body"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Message(aux.plain)
	if m.TextBody == "" && aux.TextBodySnake != nil {
		m.TextBody = *aux.TextBodySnake
	}
	if m.HTMLBody == "" && aux.HTMLBodySnake != nil {
		m.HTMLBody = *aux.HTMLBodySnake
	}
	return nil
}

// Attachment is an attachment descriptor nested in a Message.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// UnmarshalJSON accepts both contentType and content_type.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	type plain Attachment
	var aux struct {
		plain
		ContentTypeSnake *string `json:"content_type"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Attachment(aux.plain)
	if a.ContentType == "" && aux.ContentTypeSnake != nil {
		a.ContentType = *aux.ContentTypeSnake
	}
	return nil
}
