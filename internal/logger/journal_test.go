package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger(t *testing.T) *Logger {
	t.Helper()
	log, err := NewLogger(LogConfig{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	return log
}

func TestJournalRecordWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	journal, err := NewJournal(dir, testLogger(t))
	if err != nil {
		t.Fatalf("NewJournal() error: %v", err)
	}

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	entries := []JournalEntry{
		{Timestamp: now, Operation: "transfer", Signer: "abc", Signature: "sig1", Lamports: 1000, Status: "success"},
		{Timestamp: now, Operation: "token_mint", Signer: "abc", Mint: "mint1", Amount: 5, Status: "failed", ErrorMessage: "boom"},
	}
	for _, e := range entries {
		if err := journal.Record(e); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	file, err := os.Open(filepath.Join(dir, "operations_2026-03-14.jsonl"))
	if err != nil {
		t.Fatalf("journal file not created: %v", err)
	}
	defer file.Close()

	var got []JournalEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid journal line: %v", err)
		}
		got = append(got, e)
	}

	if len(got) != len(entries) {
		t.Fatalf("journal has %d entries, want %d", len(got), len(entries))
	}
	if got[0].Operation != "transfer" || got[0].Signature != "sig1" {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].Status != "failed" || got[1].ErrorMessage != "boom" {
		t.Errorf("second entry = %+v", got[1])
	}
}

func TestJournalRecordFailureCapturesError(t *testing.T) {
	dir := t.TempDir()
	journal, err := NewJournal(dir, testLogger(t))
	if err != nil {
		t.Fatalf("NewJournal() error: %v", err)
	}

	if err := journal.RecordFailure("stake_delegate", "signer", os.ErrPermission); err != nil {
		t.Fatalf("RecordFailure() error: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "operations_*.jsonl"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one journal file, got %v (%v)", matches, err)
	}
}
