package core

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
)

// Store defines the contract for reading and committing document metadata.
// Adhering to this interface keeps the core independent of the container
// format and the safe-write mechanics (see the pdf adapter).
type Store interface {
	// Extract returns the current information dictionary of the document at
	// path. Read-only, no side effects.
	Extract(ctx context.Context, path string) (Mapping, error)

	// Commit writes a copy of the document at path with its information
	// dictionary replaced by final, renaming the original to a fresh backup
	// path. On any error other than a CriticalRecoveryError, storage is
	// either untouched or fully committed.
	Commit(ctx context.Context, path string, final Mapping) (CommitResult, error)
}

// Service handles the business logic for metadata sessions.
//
// The service is synchronous: each open or commit runs to completion before
// the next begins. Callers must not start a second commit for the same path
// while one is in flight; commits on distinct paths are independent.
type Service struct {
	store  Store
	logger *slog.Logger

	mu      sync.RWMutex
	opened  int
	commits int
}

// NewService creates a new Service. logger may be nil for silent operation.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// Open extracts the metadata of the document at path and returns a session
// holding the handle and the extracted snapshot.
func (s *Service) Open(ctx context.Context, path string) (*Session, error) {
	if path == "" {
		return nil, errors.New("document path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	mapping, err := s.store.Extract(ctx, abs)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.opened++
	s.mu.Unlock()

	s.logger.Debug("document opened", "path", abs, "entries", len(mapping))
	return &Session{svc: s, Path: abs, Original: mapping}, nil
}

// Commit writes the document at path with final as its information
// dictionary, backing up the original first.
func (s *Service) Commit(ctx context.Context, path string, final Mapping) (CommitResult, error) {
	if path == "" {
		return CommitResult{}, errors.New("document path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return CommitResult{}, err
	}

	res, err := s.store.Commit(ctx, abs, final)
	if err != nil {
		s.logger.Error("commit failed", "path", abs, "error", err)
		return CommitResult{}, err
	}

	s.mu.Lock()
	s.commits++
	s.mu.Unlock()

	s.logger.Info("commit succeeded", "path", res.Path, "backup", res.BackupPath)
	return res, nil
}

// Session is one open document: the handle plus the mapping extracted when
// it was opened. It replaces any ambient "currently open file" state; all
// calls take the session explicitly.
type Session struct {
	svc *Service

	// Path is the absolute path of the document.
	Path string

	// Original is the mapping extracted at open time. It is not refreshed;
	// commit re-reads the document bytes itself.
	Original Mapping
}

// Reconcile merges edits into the session's original mapping.
func (s *Session) Reconcile(edits []EditRow) (Mapping, error) {
	return Reconcile(s.Original, edits)
}

// Commit persists final for this session's document.
func (s *Session) Commit(ctx context.Context, final Mapping) (CommitResult, error) {
	return s.svc.Commit(ctx, s.Path, final)
}
