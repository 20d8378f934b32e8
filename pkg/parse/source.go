package parse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pedarprobe/pedarprobe/pkg/ports"
)

// Options configures a pedar Source.
type Options struct {
	// GuidePath is the guiding spreadsheet listing every trial. The .asc
	// files are expected under <dir-of-guide>/<subject>/<entry name>.asc.
	GuidePath string

	// Conditions is the experiment's condition list, used to validate entry
	// names.
	Conditions []string

	// MaxReadRate caps the fraction of guide entries to load (0 < rate <= 1).
	// Loading is slow; a low rate speeds up development runs. Zero means 1.0.
	MaxReadRate float64

	// Progress, when set, is called after each processed entry.
	Progress func(done, total int)

	Logger *slog.Logger
}

// Source reads pedar trial exports guided by the experiment spreadsheet and
// implements ports.Source.
type Source struct {
	opts Options
}

// NewSource builds a pedar Source. The logger defaults to slog.Default.
func NewSource(opts Options) *Source {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxReadRate <= 0 || opts.MaxReadRate > 1 {
		opts.MaxReadRate = 1.0
	}
	return &Source{opts: opts}
}

// Load parses the guide and every referenced .asc trial, emitting one
// LeafRequest per valid stance with path
// [subject, condition, trial, foot, stance N].
func (s *Source) Load(ctx context.Context, emit func(ports.LeafRequest) error) error {
	guide, err := ReadGuide(s.opts.GuidePath, s.opts.Conditions)
	if err != nil {
		return err
	}
	folder := filepath.Dir(s.opts.GuidePath)
	total := len(guide.Entries)
	s.opts.Logger.Info("loading guide entries", "count", total)

	for i, entry := range guide.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.loadEntry(entry, folder, emit); err != nil {
			return fmt.Errorf("entry %q: %w", entry.Name, err)
		}

		if s.opts.Progress != nil {
			s.opts.Progress(i+1, total)
		}
		if float64(i+1)/float64(total) >= s.opts.MaxReadRate {
			s.opts.Logger.Info("stopping at max read rate", "rate", s.opts.MaxReadRate, "loaded", i+1)
			break
		}
	}
	return nil
}

func (s *Source) loadEntry(entry Entry, folder string, emit func(ports.LeafRequest) error) error {
	path := filepath.Join(folder, entry.Subject, entry.Name+".asc")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	asc, err := ReadASC(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for idx, stance := range entry.Stances {
		start, end, ok := parseStance(stance)
		if !ok {
			continue // empty or malformed stance slot
		}
		rec, err := asc.Slice(entry.Foot, start, end)
		if err != nil {
			return fmt.Errorf("stance %d: %w", idx+1, err)
		}
		req := ports.LeafRequest{
			Path:   []string{entry.Subject, entry.Condition, entry.Trial, entry.Foot, fmt.Sprintf("stance %d", idx+1)},
			Record: rec,
		}
		if err := emit(req); err != nil {
			return err
		}
	}
	return nil
}
