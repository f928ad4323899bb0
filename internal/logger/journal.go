package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// JournalEntry represents one submitted operation in the audit journal
type JournalEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	Operation    string    `json:"operation"` // "transfer", "token_mint", "stake_delegate", ...
	Signature    string    `json:"signature,omitempty"`
	Signer       string    `json:"signer"`
	Mint         string    `json:"mint,omitempty"`
	StakeAccount string    `json:"stake_account,omitempty"`
	Destination  string    `json:"destination,omitempty"`
	Lamports     uint64    `json:"lamports,omitempty"`
	Amount       uint64    `json:"amount,omitempty"`
	Status       string    `json:"status"` // "success", "failed", "pending"
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Journal appends submitted operations to daily JSON-line files so a wallet
// owner has an audit trail independent of the process log.
type Journal struct {
	baseDir string
	logger  *Logger
}

// NewJournal creates a new operation journal
func NewJournal(baseDir string, logger *Logger) (*Journal, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	return &Journal{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// Record logs an operation to both the structured log and the daily journal
// file.
func (j *Journal) Record(entry JournalEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	j.logger.WithFields(map[string]interface{}{
		"event":     "journal_entry",
		"operation": entry.Operation,
		"signature": entry.Signature,
		"status":    entry.Status,
	}).Debug("Operation journaled")

	filename := fmt.Sprintf("operations_%s.jsonl", entry.Timestamp.Format("2006-01-02"))
	path := filepath.Join(j.baseDir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}
	defer file.Close()

	entryBytes, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	if _, err := file.Write(append(entryBytes, '\n')); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}

	return nil
}

// RecordSuccess journals a confirmed operation.
func (j *Journal) RecordSuccess(operation, signer, signature string) error {
	return j.Record(JournalEntry{
		Operation: operation,
		Signer:    signer,
		Signature: signature,
		Status:    "success",
	})
}

// RecordFailure journals a failed operation.
func (j *Journal) RecordFailure(operation, signer string, opErr error) error {
	entry := JournalEntry{
		Operation: operation,
		Signer:    signer,
		Status:    "failed",
	}
	if opErr != nil {
		entry.ErrorMessage = opErr.Error()
	}
	return j.Record(entry)
}
