// Package client talks to the waitlist HTTP API and its change stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/models"
	"github.com/gorilla/websocket"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrWaitlistClosed = errors.New("the waitlist is currently closed")
	ErrPhoneMismatch  = errors.New("invalid phone number")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrWaitlistClosed
	case http.StatusUnprocessableEntity:
		return ErrPhoneMismatch
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
}

// New returns a client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		dialer:  websocket.DefaultDialer,
	}
}

func (c *Client) GetStore(ctx context.Context, id string) (*dto.StoreResponse, error) {
	var out dto.StoreResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/stores/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetStoreByLoginID(ctx context.Context, loginID string) (*dto.StoreResponse, error) {
	var out dto.StoreResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/stores/login/"+url.PathEscape(loginID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListQueue(ctx context.Context, storeID string) ([]dto.QueueEntryResponse, error) {
	var out []dto.QueueEntryResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/stores/"+url.PathEscape(storeID)+"/queue", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) JoinWaitlist(ctx context.Context, storeID string, req dto.JoinWaitlistRequest) (*dto.EntryResponse, error) {
	var out dto.EntryResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/stores/"+url.PathEscape(storeID)+"/waitlist", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStatus(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*dto.EntryResponse, error) {
	var out dto.EntryResponse
	body := dto.UpdateStatusRequest{Status: status, PhoneLast4: phoneLast4}
	if err := c.do(ctx, http.MethodPatch, "/api/v1/waitlist/"+url.PathEscape(entryID)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyPasscode(ctx context.Context, loginID, passcode string) (bool, error) {
	var out dto.VerifyPasscodeResponse
	body := dto.VerifyPasscodeRequest{StoreLoginID: loginID, Passcode: passcode}
	if err := c.do(ctx, http.MethodPost, "/api/v1/verify-passcode", body, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

// Subscribe opens the store's change stream. The channel is closed when ctx
// is done or the connection drops.
func (c *Client) Subscribe(ctx context.Context, storeID string) (<-chan models.ChangeEvent, error) {
	wsURL, err := streamURL(c.baseURL, storeID)
	if err != nil {
		return nil, err
	}

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("dial change stream: %w", err)
	}

	out := make(chan models.ChangeEvent, 16)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(out)
		defer close(done)
		defer conn.Close()
		for {
			var ev models.ChangeEvent
			if err := conn.ReadJSON(&ev); err != nil {
				if ctx.Err() == nil {
					slog.Warn("change stream closed", "store_id", storeID, "error", err)
				}
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func streamURL(baseURL, storeID string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/stores/" + url.PathEscape(storeID) + "/stream"
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
			apiErr.Fields = payload.Fields
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
