// Package history persists run summaries across reconciliation runs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/vahti-io/vahti/reconcile"
)

var bucketRuns = []byte("runs")

// Store is a bbolt-backed log of completed runs, keyed by start time.
type Store struct {
	db *bbolt.DB
}

// Open creates or opens the history database in the given directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(dir, "vahti.db"), 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a run summary. Keys are RFC3339Nano start times, so
// bbolt's byte ordering doubles as chronological ordering.
func (s *Store) Record(summary *reconcile.RunSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	key := summary.StartedAt.UTC().Format(time.RFC3339Nano)
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("record run summary: %w", err)
	}
	return nil
}

// Recent returns up to limit summaries, newest first.
func (s *Store) Recent(limit int) ([]reconcile.RunSummary, error) {
	var summaries []reconcile.RunSummary

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketRuns).Cursor()
		for key, value := cursor.Last(); key != nil && len(summaries) < limit; key, value = cursor.Prev() {
			var summary reconcile.RunSummary
			if err := json.Unmarshal(value, &summary); err != nil {
				return fmt.Errorf("decode run summary %s: %w", key, err)
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summaries, nil
}
