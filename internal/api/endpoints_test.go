package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tempmail/client-go/internal/apierrors"
)

// newTestServer serves fixed bodies keyed by action.
func newTestServer(t *testing.T, bodies map[string]string, check func(r *http.Request)) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		body, ok := bodies[r.URL.Query().Get("action")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, server
}

func TestGenRandomMailbox(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{
		ActionGenRandomMailbox: `["a@dom.com","b@dom.com"]`,
	}, func(r *http.Request) {
		if got := r.URL.Query().Get("count"); got != "2" {
			t.Errorf("count = %q, want 2", got)
		}
	})

	got, err := client.GenRandomMailbox(context.Background(), 2)
	if err != nil {
		t.Fatalf("GenRandomMailbox() error = %v", err)
	}
	if len(got) != 2 || got[0] != "a@dom.com" || got[1] != "b@dom.com" {
		t.Errorf("GenRandomMailbox() = %v", got)
	}
}

func TestGenRandomMailbox_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantDec   bool
		wantShape bool
	}{
		{name: "invalid JSON", body: `["a@dom.com"`, wantDec: true},
		{name: "empty body", body: ``, wantDec: true},
		{name: "empty array", body: `[]`, wantShape: true},
		{name: "null", body: `null`, wantShape: true},
		{name: "object", body: `{"error":"nope"}`, wantShape: true},
		{name: "number element", body: `[42]`, wantShape: true},
		{name: "too many", body: `["a@dom.com","b@dom.com"]`, wantShape: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, map[string]string{ActionGenRandomMailbox: tt.body}, nil)

			_, err := client.GenRandomMailbox(context.Background(), 1)
			var decErr *apierrors.DecodeError
			var respErr *apierrors.ResponseError
			if got := errors.As(err, &decErr); got != tt.wantDec {
				t.Errorf("DecodeError = %v, want %v (err = %v)", got, tt.wantDec, err)
			}
			if got := errors.As(err, &respErr); got != tt.wantShape {
				t.Errorf("ResponseError = %v, want %v (err = %v)", got, tt.wantShape, err)
			}
		})
	}
}

func TestGetDomainList(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{
		ActionGetDomainList: `["1secmail.com","esiix.com"]`,
	}, nil)

	got, err := client.GetDomainList(context.Background())
	if err != nil {
		t.Fatalf("GetDomainList() error = %v", err)
	}
	if len(got) != 2 || got[1] != "esiix.com" {
		t.Errorf("GetDomainList() = %v", got)
	}
}

func TestGetDomainList_DecodeError(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{ActionGetDomainList: `<html>`}, nil)

	_, err := client.GetDomainList(context.Background())
	var decErr *apierrors.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("GetDomainList() error = %v, want *DecodeError", err)
	}
	if decErr.Action != ActionGetDomainList {
		t.Errorf("Action = %q", decErr.Action)
	}
}

func TestGetMessages(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{
		ActionGetMessages: `[{"id":639,"from":"someone@example.com","subject":"Some subject","date":"2018-06-08 14:33:55"}]`,
	}, func(r *http.Request) {
		q := r.URL.Query()
		if q.Get("login") != "demo" || q.Get("domain") != "1secmail.com" {
			t.Errorf("query = %v", q)
		}
	})

	got, err := client.GetMessages(context.Background(), "demo", "1secmail.com")
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	m := got[0]
	if m.ID != 639 || m.From != "someone@example.com" || m.Subject != "Some subject" {
		t.Errorf("summary = %+v", m)
	}
	want := time.Date(2018, 6, 8, 14, 33, 55, 0, time.UTC)
	if !m.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", m.Date.Time, want)
	}
}

func TestGetMessages_EmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		client, _ := newTestServer(t, map[string]string{ActionGetMessages: body}, nil)
		got, err := client.GetMessages(context.Background(), "demo", "1secmail.com")
		if err != nil {
			t.Fatalf("GetMessages(%s) error = %v", body, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("GetMessages(%s) = %v, want empty non-nil slice", body, got)
		}
	}
}

func TestGetMessages_BadDate(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{
		ActionGetMessages: `[{"id":1,"from":"a","subject":"b","date":"2018/06/08 14:33:55"}]`,
	}, nil)

	_, err := client.GetMessages(context.Background(), "demo", "1secmail.com")
	var decErr *apierrors.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("GetMessages() error = %v, want *DecodeError", err)
	}
	if !errors.Is(err, apierrors.ErrMalformedTimestamp) {
		t.Errorf("GetMessages() error = %v, want ErrMalformedTimestamp in chain", err)
	}
}

const fullMessage = `{
	"id": 639,
	"from": "someone@example.com",
	"subject": "Some subject",
	"date": "2018-06-08 14:33:55",
	"attachments": [
		{"filename": "iometer.pdf", "contentType": "application/pdf", "size": 47412}
	],
	"body": "Some message body\n\n",
	"textBody": "Some message body\n\n",
	"htmlBody": ""
}`

func TestReadMessage(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{ActionReadMessage: fullMessage}, func(r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "639" {
			t.Errorf("id = %q, want 639", got)
		}
	})

	msg, err := client.ReadMessage(context.Background(), "demo", "1secmail.com", 639)
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if msg.ID != 639 || msg.Subject != "Some subject" {
		t.Errorf("message = %+v", msg)
	}
	if msg.TextBody != "Some message body\n\n" {
		t.Errorf("TextBody = %q", msg.TextBody)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(msg.Attachments))
	}
	a := msg.Attachments[0]
	if a.Filename != "iometer.pdf" || a.ContentType != "application/pdf" || a.Size != 47412 {
		t.Errorf("attachment = %+v", a)
	}
}

func TestReadMessage_SnakeCaseFields(t *testing.T) {
	body := `{"id":1,"from":"a","subject":"s","date":"2023-05-01 12:00:00",
		"attachments":[{"filename":"x.txt","content_type":"text/plain","size":3}],
		"body":"b","text_body":"plain","html_body":"<p>html</p>"}`
	client, _ := newTestServer(t, map[string]string{ActionReadMessage: body}, nil)

	msg, err := client.ReadMessage(context.Background(), "demo", "1secmail.com", 1)
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if msg.TextBody != "plain" {
		t.Errorf("TextBody = %q, want plain", msg.TextBody)
	}
	if msg.HTMLBody != "<p>html</p>" {
		t.Errorf("HTMLBody = %q", msg.HTMLBody)
	}
	if msg.Attachments[0].ContentType != "text/plain" {
		t.Errorf("ContentType = %q, want text/plain", msg.Attachments[0].ContentType)
	}
}

func TestReadMessage_NotFound(t *testing.T) {
	for _, body := range []string{``, `Message not found`, "  \n"} {
		client, _ := newTestServer(t, map[string]string{ActionReadMessage: body}, nil)

		_, err := client.ReadMessage(context.Background(), "demo", "1secmail.com", 7)
		if !errors.Is(err, apierrors.ErrMessageNotFound) {
			t.Errorf("ReadMessage(%q) error = %v, want ErrMessageNotFound", body, err)
		}
		var nf *apierrors.NotFoundError
		if errors.As(err, &nf) && nf.ID != 7 {
			t.Errorf("NotFoundError.ID = %d, want 7", nf.ID)
		}
	}
}

func TestReadMessage_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()
	client, _ := NewClient(Config{BaseURL: server.URL})

	_, err := client.ReadMessage(context.Background(), "demo", "1secmail.com", 7)
	if !errors.Is(err, apierrors.ErrMessageNotFound) {
		t.Errorf("ReadMessage() error = %v, want ErrMessageNotFound", err)
	}
}

func TestReadMessage_DecodeError(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{ActionReadMessage: `{"id":"not-a-number"}`}, nil)

	_, err := client.ReadMessage(context.Background(), "demo", "1secmail.com", 1)
	var decErr *apierrors.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("ReadMessage() error = %v, want *DecodeError", err)
	}
	if errors.Is(err, apierrors.ErrMessageNotFound) {
		t.Error("decode failure must not match ErrMessageNotFound")
	}
}

func TestDownload(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{ActionDownload: "file-bytes"}, func(r *http.Request) {
		q := r.URL.Query()
		if q.Get("file") != "iometer.pdf" || q.Get("id") != "639" {
			t.Errorf("query = %v", q)
		}
	})

	body, err := client.Download(context.Background(), "demo", "1secmail.com", 639, "iometer.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "file-bytes" {
		t.Errorf("body = %q", data)
	}
}

func TestDownload_StatusError(t *testing.T) {
	client, _ := newTestServer(t, map[string]string{}, nil)

	_, err := client.Download(context.Background(), "demo", "1secmail.com", 1, "x")
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Download() error = %v, want *APIError", err)
	}
	if errors.Is(err, apierrors.ErrMessageNotFound) {
		t.Error("download status error must not match ErrMessageNotFound")
	}
}
