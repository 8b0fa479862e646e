package airtable

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Table names inside the service base.
const (
	TableDevices         = "Devices"
	TableCustomers       = "Customers"
	TableTechnicians     = "Technicians"
	TableServiceRequests = "Service_Requests"
	TableCalendar        = "Calendar"
)

// Service request statuses as stored in Airtable.
const (
	StatusNew       = "New"
	StatusScheduled = "Scheduled"
)

// serialPattern accepts "SN: 1234", "SN.1234", "sn 1234" and the bare value.
var serialPattern = regexp.MustCompile(`(?i)SN[:.]?\s*(\w+)`)

// CleanSerial strips the SN prefix users type in front of serial numbers.
func CleanSerial(input string) string {
	if m := serialPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return strings.TrimSpace(strings.Replace(input, "SN:", "", 1))
}

// Device is the assistant's view of a Devices row.
type Device struct {
	RecordID       string `json:"record_id"`
	SerialNumber   string `json:"serial_number"`
	Model          string `json:"model"`
	WarrantyStatus string `json:"warranty_status"`
	CustomerID     string `json:"customer_id,omitempty"`
}

// DeviceBySerial verifies a device by its serial number. The input may carry
// the SN prefix users are asked to type.
func (c *Client) DeviceBySerial(ctx context.Context, serialInput string) (Device, error) {
	serial := CleanSerial(serialInput)
	c.Logger.WithField("serial", serial).Debug("searching for device")

	formula := fmt.Sprintf("{serial_number}='%s'", strings.ReplaceAll(serial, "'", "\\'"))
	records, err := c.List(ctx, TableDevices, formula, 1)
	if err != nil {
		return Device{}, err
	}
	if len(records) == 0 {
		c.Logger.WithField("serial", serial).Warn("device not found")
		return Device{}, ErrNotFound
	}

	rec := records[0]
	device := Device{
		RecordID:       rec.ID,
		SerialNumber:   rec.Field("serial_number"),
		Model:          rec.Field("model"),
		WarrantyStatus: rec.Field("warranty_status"),
		CustomerID:     rec.Field("customer_id"),
	}
	if device.SerialNumber == "" {
		device.SerialNumber = serial
	}
	c.Logger.WithField("record_id", rec.ID).Info("device found")
	return device, nil
}

// CustomerByID fetches a Customers row linked from a device.
func (c *Client) CustomerByID(ctx context.Context, customerID string) (Record, error) {
	return c.Get(ctx, TableCustomers, customerID)
}

// Technicians lists every row of the Technicians table.
func (c *Client) Technicians(ctx context.Context) ([]Record, error) {
	return c.List(ctx, TableTechnicians, "", 0)
}

// ServiceRequest captures what we write into Service_Requests.
type ServiceRequest struct {
	DeviceRecordID   string
	CustomerRecordID string
	Description      string
	ScheduledAt      *time.Time
}

// CreateServiceRequest files a new service request, status New.
func (c *Client) CreateServiceRequest(ctx context.Context, req ServiceRequest) (Record, error) {
	if req.DeviceRecordID == "" || req.Description == "" {
		return Record{}, fmt.Errorf("airtable: device and description are required for a service request")
	}
	fields := map[string]any{
		"Device":      []string{req.DeviceRecordID},
		"Description": req.Description,
		"Status":      StatusNew,
		"Created":     time.Now().UTC().Format(time.RFC3339),
	}
	if req.CustomerRecordID != "" {
		fields["Customer"] = []string{req.CustomerRecordID}
	}
	if req.ScheduledAt != nil {
		fields["Scheduled_Date"] = req.ScheduledAt.UTC().Format(time.RFC3339)
	}
	rec, err := c.Create(ctx, TableServiceRequests, fields)
	if err != nil {
		return Record{}, err
	}
	c.Logger.WithField("record_id", rec.ID).Info("service request created")
	return rec, nil
}

// ScheduleServiceRequest flips an existing request to Scheduled.
func (c *Client) ScheduleServiceRequest(ctx context.Context, requestID string, when time.Time) error {
	_, err := c.Update(ctx, TableServiceRequests, requestID, map[string]any{
		"Status":         StatusScheduled,
		"Scheduled_Date": when.UTC().Format(time.RFC3339),
	})
	if err == nil {
		c.Logger.WithFields(logrus.Fields{
			"record_id": requestID,
			"date":      when,
		}).Info("service request scheduled")
	}
	return err
}

// CalendarEvent is a booked visit in the Calendar table.
type CalendarEvent struct {
	DateTime        time.Time
	Summary         string
	Description     string
	DeviceModel     string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CustomerAddress string
}

// CreateCalendarEvent books a visit slot. The stored timestamp is UTC
// ISO-8601 with a trailing Z, which is what Airtable's date field expects.
func (c *Client) CreateCalendarEvent(ctx context.Context, ev CalendarEvent) (Record, string, error) {
	fields := map[string]any{
		"date_time": ev.DateTime.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if ev.Summary != "" {
		fields["summary"] = ev.Summary
	}
	if ev.Description != "" {
		fields["description"] = ev.Description
	}
	if ev.DeviceModel != "" {
		fields["device_model"] = ev.DeviceModel
	}
	if ev.CustomerName != "" {
		fields["customer_name"] = ev.CustomerName
	}
	if ev.CustomerPhone != "" {
		fields["customer_phone"] = ev.CustomerPhone
	}
	if ev.CustomerEmail != "" {
		fields["customer_email"] = ev.CustomerEmail
	}
	if ev.CustomerAddress != "" {
		fields["customer_address"] = ev.CustomerAddress
	}

	rec, err := c.Create(ctx, TableCalendar, fields)
	if err != nil {
		return Record{}, "", err
	}
	link := fmt.Sprintf("https://airtable.com/%s/%s/%s", c.baseID, TableCalendar, rec.ID)
	return rec, link, nil
}

// OccupiedSlots returns the timestamps of every booked Calendar row. Rows
// with unparseable dates are skipped with a log entry rather than failing
// the whole listing.
func (c *Client) OccupiedSlots(ctx context.Context) ([]time.Time, error) {
	records, err := c.List(ctx, TableCalendar, "", 0)
	if err != nil {
		return nil, err
	}
	var occupied []time.Time
	for _, rec := range records {
		raw := rec.Field("date_time")
		if raw == "" {
			continue
		}
		ts, err := parseCalendarTime(raw)
		if err != nil {
			c.Logger.WithFields(logrus.Fields{
				"record_id": rec.ID,
				"date_time": raw,
				"error":     err.Error(),
			}).Error("error parsing calendar date")
			continue
		}
		occupied = append(occupied, ts)
	}
	return occupied, nil
}

var calendarLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// parseCalendarTime accepts the handful of timestamp shapes Airtable hands
// back; naive timestamps are read as UTC.
func parseCalendarTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range calendarLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// Healthcheck issues a cheap one-record listing to confirm the base is
// reachable and the credentials work.
func (c *Client) Healthcheck(ctx context.Context) error {
	_, err := c.List(ctx, TableDevices, "", 1)
	if err != nil && err != ErrNotFound {
		return err
	}
	return nil
}
