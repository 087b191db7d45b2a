package store

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Snapshot holds the full contents of both record collections. Commands
// always operate on whole collections; there is no partial update.
type Snapshot struct {
	Users    []domain.User
	Vouchers []domain.Voucher
}

// Store persists users and vouchers as two sheets of a single workbook.
// Every load-mutate-save cycle runs under the write lock, so concurrent
// mutating commands are serialized and a reader never observes one
// collection updated while the other is stale.
type Store struct {
	path string
	mu   sync.RWMutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// View runs fn against a consistent read-only snapshot. Mutations made by
// fn are discarded.
func (s *Store) View(fn func(*Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.load())
}

// Update runs fn against the current snapshot and writes the result back
// as a single unit. If fn returns an error nothing is written.
func (s *Store) Update(fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.load()
	if err := fn(snap); err != nil {
		return err
	}
	return s.save(snap)
}

// load reads both sheets in full. A missing or unreadable workbook yields
// empty collections so the bot stays responsive; the condition is logged
// but never surfaced to the sender.
func (s *Store) load() *Snapshot {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		slog.Warn("database not readable, using empty collections",
			"path", s.path,
			"error", err,
		)
		return &Snapshot{}
	}
	defer f.Close()

	snap := &Snapshot{}
	for _, row := range dataRows(f, usersSheet) {
		u, ok := decodeUser(row)
		if !ok {
			slog.Warn("skipping malformed user row", "row", row)
			continue
		}
		snap.Users = append(snap.Users, u)
	}
	for _, row := range dataRows(f, vouchersSheet) {
		v, ok := decodeVoucher(row)
		if !ok {
			slog.Warn("skipping malformed voucher row", "row", row)
			continue
		}
		snap.Vouchers = append(snap.Vouchers, v)
	}
	return snap
}

// save writes both collections into a fresh workbook at a temporary path
// and renames it over the target, so the next load sees either the old
// artifact or the new one, never a half-written file.
func (s *Store) save(snap *Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeUsers(f, snap.Users); err != nil {
		return err
	}
	if err := writeVouchers(f, snap.Vouchers); err != nil {
		return err
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp.xlsx", s.path, uuid.NewString())
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace database: %w", err)
	}
	return nil
}
