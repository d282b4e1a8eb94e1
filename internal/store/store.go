// Package store persists the group catalog and bookings as two JSON files.
// Each read loads a whole file and each write rewrites it in full.
package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mentra/group-booking/internal/model"
)

const (
	GroupsFile   = "groups.json"
	BookingsFile = "bookings.json"
)

//go:embed seed.yaml
var seedCatalog []byte

// Snapshot is the full persisted state handed to a mutation.
type Snapshot struct {
	Groups   []model.Group
	Bookings []model.Booking
}

// Files is the JSON file store. Mutate calls are serialised; plain reads are
// not, and may observe a file between the two writes of a mutation.
type Files struct {
	groupsPath   string
	bookingsPath string

	mu sync.Mutex
}

// Open prepares dir, writing the default catalog if groups.json is absent.
func Open(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	f := &Files{
		groupsPath:   filepath.Join(dir, GroupsFile),
		bookingsPath: filepath.Join(dir, BookingsFile),
	}

	if _, err := os.Stat(f.groupsPath); errors.Is(err, fs.ErrNotExist) {
		groups, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		if err := writeJSON(f.groupsPath, groups); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// DefaultCatalog returns the embedded seed catalog.
func DefaultCatalog() ([]model.Group, error) {
	var groups []model.Group
	if err := yaml.Unmarshal(seedCatalog, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return groups, nil
}

// Seed overwrites groups.json with the default catalog and, when reset is
// set, clears all bookings.
func (f *Files) Seed(ctx context.Context, reset bool) error {
	groups, err := DefaultCatalog()
	if err != nil {
		return err
	}
	return f.Mutate(ctx, func(s *Snapshot) error {
		s.Groups = groups
		if reset {
			s.Bookings = []model.Booking{}
		}
		return nil
	})
}

// Groups loads the catalog.
func (f *Files) Groups(ctx context.Context) ([]model.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var groups []model.Group
	if err := readJSON(f.groupsPath, &groups); err != nil {
		return nil, fmt.Errorf("failed to read groups: %w", err)
	}
	return groups, nil
}

// Bookings loads every booking. A missing file is an empty list.
func (f *Files) Bookings(ctx context.Context) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var bookings []model.Booking
	err := readJSON(f.bookingsPath, &bookings)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}

// Mutate loads both collections, applies fn and, if fn succeeds, rewrites
// bookings then groups. Only one Mutate runs at a time.
func (f *Files) Mutate(ctx context.Context, fn func(*Snapshot) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	groups, err := f.Groups(ctx)
	if err != nil {
		return err
	}
	bookings, err := f.Bookings(ctx)
	if err != nil {
		return err
	}

	snap := &Snapshot{Groups: groups, Bookings: bookings}
	if err := fn(snap); err != nil {
		return err
	}

	if err := writeJSON(f.bookingsPath, snap.Bookings); err != nil {
		return fmt.Errorf("failed to write bookings: %w", err)
	}
	if err := writeJSON(f.groupsPath, snap.Groups); err != nil {
		return fmt.Errorf("failed to write groups: %w", err)
	}
	return nil
}

// Check verifies the catalog file is readable.
func (f *Files) Check(ctx context.Context) error {
	_, err := f.Groups(ctx)
	return err
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON replaces path atomically via a temp file in the same directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
