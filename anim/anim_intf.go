package anim

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/benz9527/bstviz/lib/infra"
	"github.com/benz9527/bstviz/lib/tree"
)

const DefaultPauseInterval = 500 * time.Millisecond

var (
	ErrNilTree     = errors.New("[anim] nil tree")
	ErrNilRenderer = errors.New("[anim] nil renderer")
)

// Renderer is the drawing collaborator. Both methods draw the whole tree,
// they must be safe to call repeatedly with the same tree state.
type Renderer[K infra.OrderedKey] interface {
	Render(bst tree.BST[K])
	// RenderHighlighted draws the tree then overlays the node of the event
	// in the event color.
	RenderHighlighted(bst tree.BST[K], ev tree.VisitEvent[K])
}

type Pauser interface {
	Pause(ctx context.Context, d time.Duration) error
}

type PauserFunc func(ctx context.Context, d time.Duration) error

func (fn PauserFunc) Pause(ctx context.Context, d time.Duration) error {
	return fn(ctx, d)
}

// Sequencer replays tree visitation steps one at a time. A step is fully
// rendered and its pause elapsed before the next one starts. A cancelled
// context stops the replay with ctx.Err(), the tree is never touched.
type Sequencer[K infra.OrderedKey] interface {
	// Play renders and pauses once per event, then redraws the plain tree.
	Play(ctx context.Context, events []tree.VisitEvent[K]) error
	// Highlight descends towards target and flashes it once if present.
	Highlight(ctx context.Context, target K, color tree.HighlightColor) error
	// ReplaySequence flashes each key in order in the traversal color.
	ReplaySequence(ctx context.Context, keys []K) error
	PauseInterval() time.Duration
}
