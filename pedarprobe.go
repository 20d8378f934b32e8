package pedarprobe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pedarprobe/pedarprobe/internal/logging"
	"github.com/pedarprobe/pedarprobe/internal/metrics"
	"github.com/pedarprobe/pedarprobe/pkg/analyse"
	"github.com/pedarprobe/pedarprobe/pkg/domain"
	"github.com/pedarprobe/pedarprobe/pkg/ports"
)

// Session is the high-level entry point for the pedarprobe library.
// It wires a parsing Source to the core tree and provides a simplified API
// for loading, aggregating and restructuring.
type Session struct {
	source  ports.Source
	levels  domain.LevelMap
	root    *domain.Node
	logger  *slog.Logger
	metrics *metrics.Set
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLevels overrides the default pedar level layout
// (subject, condition, trial, foot, stance).
func WithLevels(levels domain.LevelMap) Option {
	return func(s *Session) {
		s.levels = levels
	}
}

// WithMetrics attaches pipeline instrumentation.
func WithMetrics(set *metrics.Set) Option {
	return func(s *Session) {
		s.metrics = set
	}
}

// New initializes a Session over the given parsing source.
func New(source ports.Source, opts ...Option) (*Session, error) {
	if source == nil {
		return nil, fmt.Errorf("a parsing source is required")
	}
	s := &Session{
		source: source,
		levels: domain.DefaultLevels(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the data tree. It is nil until Load succeeds.
func (s *Session) Root() *domain.Node { return s.root }

// Levels returns the level layout of the session's tree.
func (s *Session) Levels() domain.LevelMap { return s.levels }

// Load drains the source and builds the data tree. Every emitted leaf path
// must be exactly as deep as the session's level layout; intermediate
// branches are created on demand and reused across requests.
func (s *Session) Load(ctx context.Context) error {
	root := domain.NewNode(domain.RootLevel)
	depth := s.levels.MaxDepth()
	leaves := 0

	err := s.source.Load(ctx, func(req ports.LeafRequest) error {
		if len(req.Path) != depth {
			return fmt.Errorf("leaf path %q has %d segments, level layout needs %d",
				strings.Join(req.Path, "/"), len(req.Path), depth)
		}
		if req.Record == nil {
			return fmt.Errorf("leaf path %q carries no record", strings.Join(req.Path, "/"))
		}

		current := root
		for _, name := range req.Path[:len(req.Path)-1] {
			branch, ok := current.Branch(name)
			if !ok {
				branch = domain.NewNode(name)
				if err := current.AddBranch(branch); err != nil {
					return err
				}
			}
			current = branch
		}
		if err := current.AddBranch(domain.NewLeaf(req.Path[len(req.Path)-1], req.Record)); err != nil {
			return err
		}

		leaves++
		if s.metrics != nil {
			s.metrics.LeavesBuilt.Inc()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if leaves == 0 {
		return fmt.Errorf("source emitted no leaves")
	}

	s.root = root
	s.logger.Info("data tree built", "leaves", leaves, "depth", depth)
	return nil
}

// Peak aggregates the per-sensor peak pressure bottom-up through the tree.
func (s *Session) Peak() error {
	return s.aggregate(analyse.StatPeak, analyse.Peak)
}

// PTI aggregates the per-sensor pressure-time integral bottom-up through the
// tree.
func (s *Session) PTI() error {
	return s.aggregate(analyse.StatPTI, analyse.PTI)
}

func (s *Session) aggregate(name string, fn analyse.LeafFunc) error {
	if s.root == nil {
		return fmt.Errorf("no data tree loaded")
	}
	started := time.Now()
	if err := analyse.AverageUp(s.root, name, fn); err != nil {
		return err
	}
	elapsed := time.Since(started)
	if s.metrics != nil {
		s.metrics.AggregationSeconds.WithLabelValues(name).Observe(elapsed.Seconds())
	}
	s.logger.Info("aggregation complete", "stat", name, "elapsed", elapsed)
	return nil
}

// Restructure returns a new Session holding the tree rebuilt under the given
// level layout. The receiver and its tree are untouched; keep it around for
// other views, since restructuring compresses levels irreversibly.
func (s *Session) Restructure(layout []string) (*Session, error) {
	if s.root == nil {
		return nil, fmt.Errorf("no data tree loaded")
	}
	newRoot, newLevels, err := domain.Restructure(s.root, s.levels, layout)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RestructuresTotal.Inc()
	}
	s.logger.Info("tree restructured", "layout", strings.Join(layout, ","))

	return &Session{
		source:  s.source,
		levels:  newLevels,
		root:    newRoot,
		logger:  s.logger,
		metrics: s.metrics,
	}, nil
}
