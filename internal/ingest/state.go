package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/denisxab/finding-favorite-job/internal/headhunter"
)

const (
	listSnapshotFile   = "vacancies.json"
	detailSnapshotFile = "vacancies_text.json"
	errorSnapshotFile  = "vacancies_error.json"
)

// State is the durable intermediate state of the ingestion pipeline: JSON
// snapshots on disk that let each stage resume independently after an
// interrupted run.
type State struct {
	dir string
}

func NewState(dir string) (*State, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}
	return &State{dir: dir}, nil
}

// failedRef is how a failed detail fetch is recorded in the error snapshot.
type failedRef struct {
	ID string `json:"id"`
}

// WriteList replaces the list snapshot with the given search results.
func (s *State) WriteList(items []*headhunter.Vacancy) error {
	return s.writeJSON(listSnapshotFile, items)
}

// ReadPending returns the vacancy ids waiting for a detail fetch. When an
// error snapshot from a previous run exists, its ids take priority so that
// failed fetches are retried first.
func (s *State) ReadPending() (ids []string, fromErrors bool, err error) {
	var refs []failedRef
	err = s.readJSON(errorSnapshotFile, &refs)
	if err == nil {
		for _, ref := range refs {
			ids = append(ids, ref.ID)
		}
		return ids, true, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}

	var items []*headhunter.Vacancy
	if err := s.readJSON(listSnapshotFile, &items); err != nil {
		return nil, false, err
	}
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids, false, nil
}

// WriteDetails replaces the detail snapshot with the fetched payloads.
func (s *State) WriteDetails(items []*headhunter.Vacancy) error {
	return s.writeJSON(detailSnapshotFile, items)
}

// ReadDetails loads the detail snapshot.
func (s *State) ReadDetails() ([]*headhunter.Vacancy, error) {
	var items []*headhunter.Vacancy
	if err := s.readJSON(detailSnapshotFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WriteErrors records ids whose detail fetch failed, to retry on the next run.
func (s *State) WriteErrors(ids []string) error {
	refs := make([]failedRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, failedRef{ID: id})
	}
	return s.writeJSON(errorSnapshotFile, refs)
}

// ClearErrors removes the error snapshot so a clean run leaves no stale
// error state behind.
func (s *State) ClearErrors() error {
	err := os.Remove(filepath.Join(s.dir, errorSnapshotFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *State) writeJSON(name string, v any) error {
	file, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", name, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", name, err)
	}
	return nil
}

func (s *State) readJSON(name string, v any) error {
	file, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("decoding snapshot %s: %w", name, err)
	}
	return nil
}
