// Package store persists chat transcripts and filed service requests
// in a local sqlite database. Airtable stays the system of record for
// scheduling; this store backs the operations dashboard and history.
package store

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ServiceRequest is a filed repair request with its scheduling outcome.
type ServiceRequest struct {
	gorm.Model
	SessionID        string `gorm:"index"`
	AirtableRecordID string
	SerialNumber     string
	DeviceModel      string
	Description      string
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	CustomerAddress  string
	Status           string
	ScheduledAt      *time.Time
	CalendarLink     string
}

// Message is a single chat turn, kept for session history.
type Message struct {
	gorm.Model
	SessionID string `gorm:"index"`
	Role      string
	Content   string
	State     string
}

// Store wraps the gorm handle.
type Store struct {
	db *gorm.DB
}

// Open opens the sqlite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ServiceRequest{}, &Message{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// SaveMessage appends a chat turn to the transcript.
func (s *Store) SaveMessage(ctx context.Context, sessionID, role, content, state string) error {
	msg := Message{SessionID: sessionID, Role: role, Content: content, State: state}
	return s.db.WithContext(ctx).Create(&msg).Error
}

// History returns the session transcript in chronological order.
func (s *Store) History(ctx context.Context, sessionID string) ([]Message, error) {
	var msgs []Message
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id asc").Find(&msgs).Error
	return msgs, err
}

// SaveServiceRequest records a filed request.
func (s *Store) SaveServiceRequest(ctx context.Context, req *ServiceRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

// UpdateServiceRequest persists scheduling changes on an existing
// request.
func (s *Store) UpdateServiceRequest(ctx context.Context, req *ServiceRequest) error {
	return s.db.WithContext(ctx).Save(req).Error
}

// ServiceRequestBySession returns the most recent request filed in the
// given session, or nil when none exists.
func (s *Store) ServiceRequestBySession(ctx context.Context, sessionID string) (*ServiceRequest, error) {
	var req ServiceRequest
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id desc").First(&req).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ServiceRequestByID fetches a single filed request, or nil when the
// id is unknown.
func (s *Store) ServiceRequestByID(ctx context.Context, id uint) (*ServiceRequest, error) {
	var req ServiceRequest
	err := s.db.WithContext(ctx).First(&req, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ServiceRequests lists filed requests, newest first, optionally
// filtered by status.
func (s *Store) ServiceRequests(ctx context.Context, status string, limit int) ([]ServiceRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Order("id desc").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reqs []ServiceRequest
	err := q.Find(&reqs).Error
	return reqs, err
}

// Stats summarizes request counts per status for the dashboard.
func (s *Store) Stats(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&ServiceRequest{}).
		Select("status, count(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(rows))
	for _, r := range rows {
		stats[r.Status] = r.Count
	}
	return stats, nil
}
