package anim

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/benz9527/bstviz/lib/infra"
	"github.com/benz9527/bstviz/lib/tree"
	"github.com/benz9527/bstviz/xlog"
)

var _ Sequencer[int] = (*xSequencer[int])(nil)

type xSequencer[K infra.OrderedKey] struct {
	bst      tree.BST[K]
	renderer Renderer[K]
	pauser   Pauser
	logger   xlog.XLogger
	stats    *sequencerStats
	interval time.Duration
}

func (seq *xSequencer[K]) PauseInterval() time.Duration {
	return seq.interval
}

func (seq *xSequencer[K]) pause(ctx context.Context) error {
	begin := time.Now()
	err := seq.pauser.Pause(ctx, seq.interval)
	seq.stats.RecordPause(time.Since(begin).Milliseconds())
	return err
}

// step renders one highlighted node and waits for the pause to elapse.
func (seq *xSequencer[K]) step(ctx context.Context, ev tree.VisitEvent[K]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq.renderer.RenderHighlighted(seq.bst, ev)
	seq.stats.RecordStep(ev.Color)
	if seq.logger != nil {
		seq.logger.Debug("animation step",
			zap.Any("key", ev.Key),
			zap.Stringer("color", ev.Color),
			zap.Int("depth", ev.Depth()),
			zap.String("path", ev.PathString()),
		)
	}
	return seq.pause(ctx)
}

func (seq *xSequencer[K]) Play(ctx context.Context, events []tree.VisitEvent[K]) error {
	defer seq.stats.RecordReplay("events", len(events))
	for _, ev := range events {
		if err := seq.step(ctx, ev); err != nil {
			return err
		}
	}
	seq.renderer.Render(seq.bst)
	return nil
}

// Highlight reuses the tree search descent, only the matched node pauses.
func (seq *xSequencer[K]) Highlight(ctx context.Context, target K, color tree.HighlightColor) error {
	path, node := seq.bst.Search(target)
	if node == nil || len(path) == 0 {
		return nil
	}
	hit := path[len(path)-1]
	hit.Color = color
	return seq.step(ctx, hit)
}

func (seq *xSequencer[K]) ReplaySequence(ctx context.Context, keys []K) error {
	defer seq.stats.RecordReplay("traversal", len(keys))
	for _, key := range keys {
		if err := seq.pause(ctx); err != nil {
			return err
		}
		seq.renderer.Render(seq.bst)
		if err := seq.Highlight(ctx, key, tree.TraversalOrder); err != nil {
			return err
		}
	}
	return nil
}

func NewSequencer[K infra.OrderedKey](bst tree.BST[K], renderer Renderer[K], opts ...SequencerOption[K]) (Sequencer[K], error) {
	if bst == nil {
		return nil, ErrNilTree
	}
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	seq := &xSequencer[K]{
		bst:      bst,
		renderer: renderer,
		pauser:   TimerPauser,
		interval: DefaultPauseInterval,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(seq)
	}
	return seq, nil
}
