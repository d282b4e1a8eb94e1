package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mentra/group-booking/internal/model"
)

// DefaultBaseURL is where the API listens in local development.
const DefaultBaseURL = "http://localhost:3000/api"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client calls the booking API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithToken sends a bearer token, needed for handoffs when the server
// requires therapist auth.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends one intake message with the transcript so far.
func (c *Client) Chat(ctx context.Context, message string, history []model.ConversationMessage) (string, error) {
	var resp model.ChatResponse
	err := c.do(ctx, http.MethodPost, "/chat", &model.ChatRequest{Message: message, ConversationHistory: history}, &resp)
	return resp.Response, err
}

// Insights asks for the profile of a finished transcript.
func (c *Client) Insights(ctx context.Context, history []model.ConversationMessage) (*model.InsightProfile, error) {
	if history == nil {
		history = []model.ConversationMessage{}
	}
	var resp model.InsightProfile
	if err := c.do(ctx, http.MethodPost, "/insights", &model.InsightsRequest{ConversationHistory: history}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Groups lists the catalog.
func (c *Client) Groups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := c.do(ctx, http.MethodGet, "/groups", nil, &groups)
	return groups, err
}

// Group fetches one group with its sessions.
func (c *Client) Group(ctx context.Context, id string) (*model.Group, error) {
	var g model.Group
	if err := c.do(ctx, http.MethodGet, "/groups/"+url.PathEscape(id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Slots lists the sessions of a group that still have seats.
func (c *Client) Slots(ctx context.Context, groupID string) ([]model.Session, error) {
	var resp model.SlotsResponse
	err := c.do(ctx, http.MethodPost, "/groups/slots/generate", &model.SlotsRequest{GroupID: groupID}, &resp)
	return resp.AvailableSlots, err
}

// Book creates a booking.
func (c *Client) Book(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	var resp model.CreateBookingResponse
	if err := c.do(ctx, http.MethodPost, "/booking", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Booking fetches a booking by id.
func (c *Client) Booking(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := c.do(ctx, http.MethodGet, "/booking/"+url.PathEscape(id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Handoff generates the therapist handoff for a group.
func (c *Client) Handoff(ctx context.Context, groupID string) (*model.HandoffResponse, error) {
	var h model.HandoffResponse
	if err := c.do(ctx, http.MethodGet, "/handoff/"+url.PathEscape(groupID), nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
