package ui

import (
	"strings"
	"testing"

	"lunar/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	files := []string{"/p/a.lr", "/p/b.lr"}
	m := NewProgressModel("parsing /p", "/p", files, nil).(*progressModel)

	m.Update(eventMsg{File: "/p/a.lr", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("expected parsing, got %q", m.items[0].status)
	}
	m.Update(eventMsg{File: "/p/a.lr", Stage: driver.StageParse, Status: driver.StatusDone})
	m.Update(eventMsg{File: "/p/b.lr", Stage: driver.StageParse, Status: driver.StatusError})
	m.Update(eventMsg{File: "/p/unknown.lr", Stage: driver.StageParse, Status: driver.StatusDone})

	if got := m.percent(); got != 1.0 {
		t.Fatalf("expected full progress, got %v", got)
	}
	if m.failed != 1 {
		t.Fatalf("expected one failed file, got %d", m.failed)
	}

	m.Update(doneMsg{})
	view := m.View()
	if !strings.Contains(view, "done: parsing /p (1/2 failed)") {
		t.Fatalf("unexpected header in view:\n%s", view)
	}
	if !strings.Contains(view, "a.lr") || strings.Contains(view, "/p/a.lr") {
		t.Fatalf("file names must be shown relative to base dir:\n%s", view)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageLoad, driver.StatusWorking, "loading"},
		{driver.StageParse, driver.StatusWorking, "parsing"},
		{driver.StageParse, driver.StatusError, "error"},
		{driver.StageLex, driver.Status("weird"), ""},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.lr", 20, "short.lr"},
		{"very/long/path/name.lr", 10, "very/lo..."},
		{"日本語.lr", 5, "日..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
