// Package apiclient talks to the patientor REST service. Every call takes a
// context, carries an X-Request-ID header and reports its outcome to an
// optional observer.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// RequestIDHeader is sent with every upstream call.
const RequestIDHeader = "X-Request-ID"

// Names passed to the Observer.
const (
	OpPing           = "ping"
	OpListPatients   = "list_patients"
	OpListDiagnoses  = "list_diagnoses"
	OpGetPatient     = "get_patient"
	OpAddPatient     = "add_patient"
	OpAddEntry       = "add_entry"
	maxErrorBodySize = 4 << 10
)

// ErrMissingPatientID is returned when a patient lookup has no id.
var ErrMissingPatientID = errors.New("id is undefined")

// TransportError means the service could not be reached or its response
// could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a non-2xx answer from the service. Message is the
// service's own text.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return e.Message
}

// Observer is told about every completed call. status is 0 when no response
// was received.
type Observer func(op string, status int, d time.Duration)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.httpClient.Timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func WithObserver(o Observer) Option {
	return func(cl *Client) { cl.observer = o }
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	observer   Observer
}

// New returns a client for the service rooted at baseURL, for example
// http://localhost:3001/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url scheme must be http or https, got %q", u.Scheme)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Ping checks that the service answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, OpPing, http.MethodGet, "/ping", nil, nil)
}

func (c *Client) ListPatients(ctx context.Context) ([]patient.Patient, error) {
	var out []patient.Patient
	if err := c.do(ctx, OpListPatients, http.MethodGet, "/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListDiagnoses(ctx context.Context) ([]patient.Diagnosis, error) {
	var out []patient.Diagnosis
	if err := c.do(ctx, OpListDiagnoses, http.MethodGet, "/diagnoses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPatient fetches the full record of one patient, entries included.
func (c *Client) GetPatient(ctx context.Context, id string) (patient.Patient, error) {
	if id == "" {
		return patient.Patient{}, ErrMissingPatientID
	}
	var p patient.Patient
	if err := c.do(ctx, OpGetPatient, http.MethodGet, "/patients/"+url.PathEscape(id), nil, &p); err != nil {
		return patient.Patient{}, err
	}
	if err := p.Validate(); err != nil {
		return patient.Patient{}, &TransportError{Op: OpGetPatient, Err: err}
	}
	return p, nil
}

// AddPatient creates a patient and returns it as stored by the service.
func (c *Client) AddPatient(ctx context.Context, np patient.NewPatient) (patient.Patient, error) {
	var p patient.Patient
	if err := c.do(ctx, OpAddPatient, http.MethodPost, "/patients", np, &p); err != nil {
		return patient.Patient{}, err
	}
	return p, nil
}

// AddEntry posts an entry without id to a patient's record. The service's
// response body is not used; callers refetch the patient.
func (c *Client) AddEntry(ctx context.Context, id string, e patient.Entry) error {
	if id == "" {
		return ErrMissingPatientID
	}
	if e == nil {
		return &patient.UnknownEntryTypeError{Type: "<nil>"}
	}
	return c.do(ctx, OpAddEntry, http.MethodPost, "/patients/"+url.PathEscape(id)+"/entries", e, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := requestIDFrom(ctx)
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(op, 0, elapsed)
		c.logger.Warn().Err(err).Str("op", op).Str("request_id", reqID).Dur("duration", elapsed).Msg("upstream request failed")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, elapsed)

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("duration", elapsed).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(msg)}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) observe(op string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer(op, status, d)
	}
}

// errorMessage pulls the service's message out of an error body, which is
// either {"error": "..."} or plain text.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

type requestIDKey struct{}

// ContextWithRequestID makes calls under ctx reuse id instead of minting a
// fresh one.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}
