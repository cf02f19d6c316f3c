package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// DeadLetterSchemaVersion versions the line format below
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one line of the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSON lines file
type DeadLetterWriter struct {
	mu    sync.Mutex
	file  *os.File
	clock quartz.Clock
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string, clock quartz.Clock) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &DeadLetterWriter{file: f, clock: clock}, nil
}

// Write appends one entry. Unresolved settlements must stay traceable, so
// every entry is also logged.
func (dlw *DeadLetterWriter) Write(evt Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     dlw.clock.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	logger.Warn(LogMsgEventDeadLettered,
		"event_type", evt.Type,
		"attempts", attempts,
		"error", entry.LastError)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	dlw.mu.Lock()
	defer dlw.mu.Unlock()
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

// Close closes the underlying file
func (dlw *DeadLetterWriter) Close() error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()
	return dlw.file.Close()
}

// ReadDeadLetters parses every entry in a dead-letter file. A missing file
// has no entries.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return entries, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
