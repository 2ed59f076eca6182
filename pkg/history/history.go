// Package history keeps a log of past runs: the mode, the input, the
// outcome of every stage and the text artifacts produced.
//
// Binary artifacts (images, audio) are never stored; only their type and
// size are recorded.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("history: not found")

// Record is one finished run.
type Record struct {
	ID        string        `msgpack:"id" json:"id" yaml:"id"`
	Mode      string        `msgpack:"mode" json:"mode" yaml:"mode"`
	Input     string        `msgpack:"input" json:"input" yaml:"input"`
	StartedAt time.Time     `msgpack:"started_at" json:"started_at" yaml:"started_at"`
	Duration  time.Duration `msgpack:"duration" json:"duration" yaml:"duration"`
	Stages    []Stage       `msgpack:"stages" json:"stages" yaml:"stages"`
	Artifacts []Artifact    `msgpack:"artifacts,omitempty" json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// Stage is the outcome of one stage of a run.
type Stage struct {
	Name   string `msgpack:"name" json:"name" yaml:"name"`
	Status string `msgpack:"status" json:"status" yaml:"status"`
	Error  string `msgpack:"error,omitempty" json:"error,omitempty" yaml:"error,omitempty"`
}

// Artifact describes one artifact of a run. Text is empty for binary
// artifacts.
type Artifact struct {
	Kind     string `msgpack:"kind" json:"kind" yaml:"kind"`
	Text     string `msgpack:"text,omitempty" json:"text,omitempty" yaml:"text,omitempty"`
	MIMEType string `msgpack:"mime_type,omitempty" json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Size     int    `msgpack:"size,omitempty" json:"size,omitempty" yaml:"size,omitempty"`
}

// Store persists run records.
type Store interface {
	// Put stores r, replacing any record with the same ID.
	Put(ctx context.Context, r *Record) error

	// Get returns the record with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// NewID returns a new time-ordered run ID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func recordKey(id string) []byte {
	return []byte(keyPrefix + id)
}

const keyPrefix = "run:"
