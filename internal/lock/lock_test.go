package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	tmpDir := t.TempDir()

	l, err := Acquire(tmpDir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	// Verify lock file exists and contains PID.
	data, err := os.ReadFile(filepath.Join(tmpDir, FileName))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if len(data) == 0 {
		t.Error("lock file is empty")
	}

	if err := l.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}

func TestDoubleAcquireFails(t *testing.T) {
	tmpDir := t.TempDir()

	l1, err := Acquire(tmpDir)
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer func() { _ = l1.Release() }()

	_, err = Acquire(tmpDir)
	if err == nil {
		t.Fatal("second Acquire() should fail")
	}

	var lockErr *LockHeldError
	if !errors.As(err, &lockErr) {
		t.Fatalf("expected LockHeldError, got %T: %v", err, err)
	}
	if lockErr.PID != os.Getpid() {
		t.Errorf("PID = %d, want holder %d", lockErr.PID, os.Getpid())
	}
	if lockErr.Path != l1.Path() {
		t.Errorf("Path = %q, want %q", lockErr.Path, l1.Path())
	}
}

func TestParseHolder(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want Holder
	}{
		{"pid=42\ntime=2026-01-01T00:00:00Z\n", Holder{PID: 42, Since: since}},
		{"time=x\npid=7\n", Holder{PID: 7}},
		{"", Holder{}},
		{"pid=abc\n", Holder{}},
	}
	for _, tt := range tests {
		if got := parseHolder(tt.in); !got.Since.Equal(tt.want.Since) || got.PID != tt.want.PID {
			t.Errorf("parseHolder(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestProbe(t *testing.T) {
	tmpDir := t.TempDir()

	h, err := Probe(tmpDir)
	if err != nil || h != nil {
		t.Fatalf("Probe() on empty dir = %+v, %v; want nil, nil", h, err)
	}

	l, err := Acquire(tmpDir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	h, err = Probe(tmpDir)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if h == nil || h.PID != os.Getpid() || h.Since.IsZero() {
		t.Errorf("Probe() = %+v, want holder %d with a start time", h, os.Getpid())
	}

	if err := l.Release(); err != nil {
		t.Fatal(err)
	}
	if h, err := Probe(tmpDir); err != nil || h != nil {
		t.Errorf("Probe() after Release = %+v, %v; want nil, nil", h, err)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	tmpDir := t.TempDir()

	l, err := Acquire(tmpDir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if err := l.Release(); err != nil {
		t.Errorf("first Release() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}
