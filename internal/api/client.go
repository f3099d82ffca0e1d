// Package api is the HTTP client for the remote scheduling service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lfreitas/divan/internal/timeutil"
)

// DefaultTimeout bounds every request when the config does not override it.
const DefaultTimeout = 10 * time.Second

// ScheduleRecord is the wire shape of one day's availability window.
// initialTime and endTime are naive local timestamps; the server stores the
// literal fields without converting to UTC.
type ScheduleRecord struct {
	ID                 string              `json:"id,omitempty"`
	InitialTime        timeutil.NaiveLocal `json:"initialTime"`
	EndTime            timeutil.NaiveLocal `json:"endTime"`
	Interval           int                 `json:"interval"`
	CancellationPolicy int                 `json:"cancellationPolicy"`
	AverageValue       *float64            `json:"averageValue,omitempty"`
	Observation        string              `json:"observation"`
	IsControlled       bool                `json:"isControlled"`
	CustomTimes        []string            `json:"customTimes,omitempty"`
}

// Booking is the wire shape of one booked slot. Field names (including the
// "pacient" spelling) are the server's contract and must not be corrected.
type Booking struct {
	SchedulingID string `json:"schedulingId"`
	PatientID    string `json:"pacientId"`
	PatientName  string `json:"namePacient"`
	Hour         string `json:"hour"`
	Status       string `json:"status"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	ProfessionalID string `json:"professionalId"`
	Name           string `json:"name"`
}

// TokenSource supplies the bearer token attached to authenticated requests.
type TokenSource interface {
	Token() string
}

// Client talks to the remote scheduling service.
type Client struct {
	baseURL string
	http    *http.Client
	auth    TokenSource
}

// New creates a Client. A zero timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, auth TokenSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		auth:    auth,
	}
}

// Login authenticates the professional and returns their identity.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateSchedules persists all availability windows in one batch call.
func (c *Client) CreateSchedules(ctx context.Context, records []ScheduleRecord) error {
	return c.do(ctx, http.MethodPost, "/schedules", records, nil)
}

// ListSchedules returns every schedule owned by the professional.
func (c *Client) ListSchedules(ctx context.Context, professionalID string) ([]ScheduleRecord, error) {
	var records []ScheduleRecord
	err := c.do(ctx, http.MethodGet, "/schedules/professional/"+professionalID, nil, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteSchedule removes a schedule and, server-side, its derived bookings.
func (c *Client) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return c.do(ctx, http.MethodDelete, "/schedules/"+scheduleID, nil, nil)
}

// ListBookings returns the booked slots of a schedule within [from, to].
// A 404 means the schedule has no bookings in the range and yields an empty
// list, not an error.
func (c *Client) ListBookings(ctx context.Context, scheduleID string, from, to timeutil.NaiveLocal) ([]Booking, error) {
	path := fmt.Sprintf("/schedules/%s/bookings?initialDate=%s&endDate=%s", scheduleID, from, to)
	var bookings []Booking
	err := c.do(ctx, http.MethodGet, path, nil, &bookings)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return bookings, nil
}

// ConfirmAttendance reports that a past appointment was handled. The same
// endpoint backs both the confirm and the no-show intents; only local
// bookkeeping tells them apart. The server signals success with either a 200
// body or an empty 204.
func (c *Client) ConfirmAttendance(ctx context.Context, schedulingID string) error {
	return c.do(ctx, http.MethodPut, "/schedulings/"+schedulingID+"/confirm", nil, nil)
}

// do performs one request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		if token := c.auth.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 204 is a success without content, not a decoding failure. The confirm
	// endpoint answers this way routinely.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &errBody)
		return statusError(resp.StatusCode, errBody.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
