package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestMessageHistory(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	turns := []struct {
		role    string
		content string
		state   string
	}{
		{"assistant", "Witaj!", "welcome"},
		{"user", "tak", "welcome"},
		{"assistant", "Podaj numer seryjny", "device_verification"},
	}
	for _, turn := range turns {
		if err := s.SaveMessage(ctx, "sess-1", turn.role, turn.content, turn.state); err != nil {
			t.Fatalf("SaveMessage() error = %v", err)
		}
	}
	if err := s.SaveMessage(ctx, "sess-2", "assistant", "Witaj!", "welcome"); err != nil {
		t.Fatalf("SaveMessage() error = %v", err)
	}

	history, err := s.History(ctx, "sess-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(history))
	}
	for i, turn := range turns {
		if history[i].Role != turn.role || history[i].Content != turn.content || history[i].State != turn.state {
			t.Errorf("history[%d] = %+v, want %+v", i, history[i], turn)
		}
	}
}

func TestHistoryEmptySession(t *testing.T) {
	s := testStore(t)
	history, err := s.History(context.Background(), "missing")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("len(history) = %d, want 0", len(history))
	}
}

func TestServiceRequestLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	slot := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	req := &ServiceRequest{
		SessionID:    "sess-1",
		SerialNumber: "VX500A",
		DeviceModel:  "VetScan X5",
		Description:  "nie włącza się",
		CustomerName: "Jan Kowalski",
		Status:       "New",
	}
	if err := s.SaveServiceRequest(ctx, req); err != nil {
		t.Fatalf("SaveServiceRequest() error = %v", err)
	}

	req.Status = "Scheduled"
	req.ScheduledAt = &slot
	if err := s.UpdateServiceRequest(ctx, req); err != nil {
		t.Fatalf("UpdateServiceRequest() error = %v", err)
	}

	got, err := s.ServiceRequestBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ServiceRequestBySession() error = %v", err)
	}
	if got == nil {
		t.Fatal("ServiceRequestBySession() = nil, want the saved request")
	}
	if got.Status != "Scheduled" || got.ScheduledAt == nil || !got.ScheduledAt.Equal(slot) {
		t.Errorf("request = %+v", got)
	}
}

func TestServiceRequestByID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	req := &ServiceRequest{SessionID: "sess-1", Description: "problem", Status: "New"}
	if err := s.SaveServiceRequest(ctx, req); err != nil {
		t.Fatalf("SaveServiceRequest() error = %v", err)
	}

	got, err := s.ServiceRequestByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("ServiceRequestByID() error = %v", err)
	}
	if got == nil || got.ID != req.ID || got.Description != "problem" {
		t.Errorf("ServiceRequestByID() = %+v, want the saved request", got)
	}

	missing, err := s.ServiceRequestByID(ctx, req.ID+100)
	if err != nil {
		t.Fatalf("ServiceRequestByID() error = %v", err)
	}
	if missing != nil {
		t.Errorf("ServiceRequestByID(unknown) = %+v, want nil", missing)
	}
}

func TestServiceRequestBySessionMissing(t *testing.T) {
	s := testStore(t)
	got, err := s.ServiceRequestBySession(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ServiceRequestBySession() error = %v", err)
	}
	if got != nil {
		t.Errorf("ServiceRequestBySession() = %+v, want nil", got)
	}
}

func TestServiceRequestsFilterAndStats(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, status := range []string{"New", "New", "Scheduled"} {
		req := &ServiceRequest{
			SessionID:   "sess",
			Description: "problem",
			Status:      status,
		}
		if err := s.SaveServiceRequest(ctx, req); err != nil {
			t.Fatalf("SaveServiceRequest(%d) error = %v", i, err)
		}
	}

	newOnes, err := s.ServiceRequests(ctx, "New", 0)
	if err != nil {
		t.Fatalf("ServiceRequests() error = %v", err)
	}
	if len(newOnes) != 2 {
		t.Errorf("len(New) = %d, want 2", len(newOnes))
	}

	all, err := s.ServiceRequests(ctx, "", 0)
	if err != nil {
		t.Fatalf("ServiceRequests() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
	if all[0].Status != "Scheduled" {
		t.Errorf("newest first ordering broken, got %q first", all[0].Status)
	}

	limited, err := s.ServiceRequests(ctx, "", 1)
	if err != nil {
		t.Fatalf("ServiceRequests() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("len(limited) = %d, want 1", len(limited))
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats["New"] != 2 || stats["Scheduled"] != 1 {
		t.Errorf("Stats() = %v", stats)
	}
}
