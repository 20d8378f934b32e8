package ports

import (
	"context"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

// LeafRequest asks the tree builder to place one measurement record in the
// hierarchy. Path locates the leaf below the root (e.g. subject, condition,
// trial, foot, stance) and must match the tree's level layout.
type LeafRequest struct {
	Path   []string
	Record *domain.Record
}

// Source is the parsing collaborator: it reads whatever raw format the data
// lives in and emits one LeafRequest per stance. Emission order determines
// sibling order in the built tree. Returning an error from emit aborts the
// load.
type Source interface {
	Load(ctx context.Context, emit func(LeafRequest) error) error
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, emit func(LeafRequest) error) error

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context, emit func(LeafRequest) error) error {
	return f(ctx, emit)
}
