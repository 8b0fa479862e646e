// Package airtable implements the record-storage client the assistant uses
// for devices, customers, service requests and the service calendar.
package airtable

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

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

const defaultBaseURL = "https://api.airtable.com/v0"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("airtable: record not found")
	// ErrConnectivity is returned when the Airtable host cannot be reached.
	ErrConnectivity = errors.New("airtable: unable to reach host")
	// ErrDecode is returned when Airtable returns a payload we cannot parse.
	ErrDecode = errors.New("airtable: unable to decode response")
)

// Client talks to the Airtable REST API for a single base.
type Client struct {
	apiKey  string
	baseID  string
	BaseURL string
	HTTP    *http.Client
	Logger  *logrus.Logger
}

// Record mirrors Airtable's record envelope.
type Record struct {
	ID          string         `json:"id,omitempty"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient returns a client for the given base. The API key is sent as a
// bearer token on every request.
func NewClient(apiKey, baseID string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = log
	}
	initAirtableMetrics()
	return &Client{
		apiKey:  apiKey,
		baseID:  baseID,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

func (c *Client) endpoint(table, recordID string) string {
	u := fmt.Sprintf("%s/%s/%s", c.BaseURL, c.baseID, url.PathEscape(table))
	if recordID != "" {
		u += "/" + recordID
	}
	return u
}

// do performs a single Airtable call and decodes the response into out.
func (c *Client) do(ctx context.Context, method, table, recordID string, query url.Values, body, out any) error {
	endpoint := c.endpoint(table, recordID)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	var reqSize int
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		reqSize = len(buf)
		reqBody = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		recordAirtableMetrics(table, method, 0, err, reqSize, 0, time.Since(start))
		c.Logger.WithFields(logrus.Fields{
			"table": table,
			"error": err.Error(),
		}).Error("error in establishing connection to airtable")
		return ErrConnectivity
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	recordAirtableMetrics(table, method, res.StatusCode, err, reqSize, len(responseBody), time.Since(start))
	if err != nil {
		c.Logger.WithFields(logrus.Fields{
			"table": table,
			"error": err.Error(),
		}).Error("error reading airtable response")
		return ErrConnectivity
	}

	if !strings.Contains(res.Header.Get("Content-Type"), "application/json") {
		c.Logger.WithFields(logrus.Fields{
			"table":        table,
			"content_type": res.Header.Get("Content-Type"),
		}).Error("airtable response content type is not application/json")
		return ErrDecode
	}

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		if err := json.Unmarshal(responseBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("airtable: %s (%s)", apiErr.Error.Message, apiErr.Error.Type)
		}
		return fmt.Errorf("airtable: unexpected status %d", res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		c.Logger.WithFields(logrus.Fields{
			"table":    table,
			"error":    err.Error(),
			"response": string(responseBody),
		}).Error("error decoding airtable response")
		return ErrDecode
	}
	return nil
}

// List fetches records from a table, optionally filtered by an Airtable
// formula. maxRecords of 0 means no explicit limit.
func (c *Client) List(ctx context.Context, table, formula string, maxRecords int) ([]Record, error) {
	query := url.Values{}
	if formula != "" {
		query.Set("filterByFormula", formula)
	}
	if maxRecords > 0 {
		query.Set("maxRecords", fmt.Sprintf("%d", maxRecords))
	}
	var res listResponse
	if err := c.do(ctx, http.MethodGet, table, "", query, nil, &res); err != nil {
		return nil, err
	}
	return res.Records, nil
}

// Get fetches a single record by its id.
func (c *Client) Get(ctx context.Context, table, recordID string) (Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, table, recordID, nil, nil, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Create inserts a record and returns the stored copy.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (Record, error) {
	var rec Record
	payload := Record{Fields: fields}
	if err := c.do(ctx, http.MethodPost, table, "", nil, payload, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update patches the given fields of an existing record.
func (c *Client) Update(ctx context.Context, table, recordID string, fields map[string]any) (Record, error) {
	var rec Record
	payload := Record{Fields: fields}
	if err := c.do(ctx, http.MethodPatch, table, recordID, nil, payload, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Field pulls a string field out of a record, tolerating absent keys.
func (r Record) Field(key string) string {
	if v, ok := r.Fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
