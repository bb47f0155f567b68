package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/tempmail/client-go/internal/apierrors"
)

// Action names understood by the service.
const (
	ActionGenRandomMailbox = "genRandomMailbox"
	ActionGetDomainList    = "getDomainList"
	ActionGetMessages      = "getMessages"
	ActionReadMessage      = "readMessage"
	ActionDownload         = "download"
)

// GenRandomMailbox asks the service for count random addresses.
// The response must be a JSON array of exactly count strings.
func (c *Client) GenRandomMailbox(ctx context.Context, count int) ([]string, error) {
	params := url.Values{"count": {strconv.Itoa(count)}}
	body, err := c.get(ctx, ActionGenRandomMailbox, params)
	if err != nil {
		return nil, err
	}

	items, err := decodeArray(ActionGenRandomMailbox, body)
	if err != nil {
		return nil, err
	}
	if len(items) != count {
		return nil, &apierrors.ResponseError{
			Action:  ActionGenRandomMailbox,
			Message: fmt.Sprintf("expected %d addresses, got %d", count, len(items)),
		}
	}

	addresses := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, &apierrors.ResponseError{
				Action:  ActionGenRandomMailbox,
				Message: fmt.Sprintf("element %d is not a string", i),
			}
		}
		addresses = append(addresses, s)
	}
	return addresses, nil
}

// GetDomainList returns the domains the service currently accepts.
func (c *Client) GetDomainList(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, ActionGetDomainList, nil)
	if err != nil {
		return nil, err
	}
	var domains []string
	if err := json.Unmarshal(body, &domains); err != nil {
		return nil, &apierrors.DecodeError{Action: ActionGetDomainList, Err: err}
	}
	return domains, nil
}

// GetMessages lists the inbox of login@domain.
func (c *Client) GetMessages(ctx context.Context, login, domain string) ([]MessageSummary, error) {
	params := url.Values{"login": {login}, "domain": {domain}}
	body, err := c.get(ctx, ActionGetMessages, params)
	if err != nil {
		return nil, err
	}
	var summaries []MessageSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, &apierrors.DecodeError{Action: ActionGetMessages, Err: err}
	}
	if summaries == nil {
		summaries = []MessageSummary{}
	}
	return summaries, nil
}

// ReadMessage fetches message id from the inbox of login@domain.
//
// The service answers an unknown id with a 404, an empty body or a plain
// text notice; all of those are reported as a not-found error. A JSON
// object that fails to decode is a DecodeError.
func (c *Client) ReadMessage(ctx context.Context, login, domain string, id int) (*Message, error) {
	params := url.Values{
		"login":  {login},
		"domain": {domain},
		"id":     {strconv.Itoa(id)},
	}
	body, err := c.get(ctx, ActionReadMessage, params)
	if err != nil {
		if errors.Is(err, apierrors.ErrMessageNotFound) {
			return nil, &apierrors.NotFoundError{ID: id}
		}
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &apierrors.NotFoundError{ID: id}
	}

	var msg Message
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return nil, &apierrors.DecodeError{Action: ActionReadMessage, Err: err}
	}
	return &msg, nil
}

// Download opens the attachment file of message id. The caller must close
// the returned body.
func (c *Client) Download(ctx context.Context, login, domain string, id int, file string) (io.ReadCloser, error) {
	params := url.Values{
		"login":  {login},
		"domain": {domain},
		"id":     {strconv.Itoa(id)},
		"file":   {file},
	}
	resp, err := c.open(ctx, ActionDownload, params)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// decodeArray checks that body is valid JSON and is an array.
func decodeArray(action string, body []byte) ([]json.RawMessage, error) {
	if !json.Valid(body) {
		var v any
		return nil, &apierrors.DecodeError{Action: action, Err: json.Unmarshal(body, &v)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &apierrors.ResponseError{Action: action, Message: "response is not an array"}
	}
	return items, nil
}
