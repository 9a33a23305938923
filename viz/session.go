package viz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/benz9527/bstviz/anim"
	"github.com/benz9527/bstviz/lib/tree"
	"github.com/benz9527/bstviz/render"
	"github.com/benz9527/bstviz/xlog"
)

const (
	defaultSurfaceWidth  = 800
	defaultSurfaceHeight = 400
)

// Session is the single user of a tree. At most one operation runs at a
// time, a second one is rejected with ErrOperationInFlight until the
// running animation really ends.
type Session struct {
	bst      tree.BST[int]
	seq      anim.Sequencer[int]
	pool     *ants.Pool // The single animation worker.
	logger   xlog.XLogger
	notifier Notifier
	output   OutputFunc
	busy     atomic.Bool
	closed   atomic.Bool
}

func (s *Session) Tree() tree.BST[int] {
	return s.bst
}

func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) notify(msg string) {
	if s.notifier != nil {
		s.notifier(msg)
	}
}

func (s *Session) debug(ctx context.Context, msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.DebugContext(ctx, msg, fields...)
	}
}

func (s *Session) parseInput(input, emptyMsg string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) == 0 {
		s.notify(emptyMsg)
		return 0, ErrEmptyInput
	}
	key, err := strconv.Atoi(trimmed)
	if err != nil {
		s.notify(MsgInvalidInput)
		return 0, errors.Wrapf(ErrInvalidInput, "%q", input)
	}
	return key, nil
}

// run executes fn on the animation worker and waits for it or for ctx.
// The busy flag is cleared by the worker, an abandoned animation still
// holds it until the sequencer observes the cancellation.
func (s *Session) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrOperationInFlight, "%s", op)
	}
	done := make(chan error, 1)
	err := s.pool.Submit(func() {
		var opErr error
		defer func() {
			if r := recover(); r != nil {
				opErr = errors.Newf("[viz] %s panic: %v", op, r)
			}
			s.busy.Store(false)
			done <- opErr
		}()
		opErr = fn(ctx)
	})
	if err != nil {
		s.busy.Store(false)
		return errors.Wrapf(err, "[viz] submit %s", op)
	}
	select {
	case err = <-done:
		return err
	case <-ctx.Done():
		if s.logger != nil {
			s.logger.WarnContext(ctx, "animation abandoned", zap.String("op", op), zap.Error(ctx.Err()))
		}
		return ctx.Err()
	}
}

// InsertNode parses input and inserts it with the descent animation.
// A duplicate plays the descent, notifies and returns nil.
func (s *Session) InsertNode(ctx context.Context, input string) error {
	key, err := s.parseInput(input, MsgEmptyInsertInput)
	if err != nil {
		return err
	}
	return s.run(ctx, "insert", func(ctx context.Context) error {
		events, insertErr := s.bst.Insert(key)
		if insertErr != nil && !errors.Is(insertErr, tree.ErrDuplicateKey) {
			return insertErr
		}
		if err := s.seq.Play(ctx, events); err != nil {
			return err
		}
		if insertErr != nil {
			s.debug(ctx, "duplicate insert", zap.Int("key", key))
			s.notify(fmt.Sprintf(msgDuplicateFormat, key))
		}
		return nil
	})
}

// DeleteNode parses input and removes it with the delete animation.
// An absent key only animates the descent.
func (s *Session) DeleteNode(ctx context.Context, input string) error {
	key, err := s.parseInput(input, MsgEmptyDeleteInput)
	if err != nil {
		return err
	}
	return s.run(ctx, "delete", func(ctx context.Context) error {
		events := s.bst.Remove(key)
		if !lo.ContainsBy(events, func(ev tree.VisitEvent[int]) bool {
			return ev.Color == tree.Deleting
		}) {
			s.debug(ctx, "delete miss", zap.Int("key", key))
		}
		return s.seq.Play(ctx, events)
	})
}

// Traverse publishes the traversal text to the output then replays it.
func (s *Session) Traverse(ctx context.Context, kind string) (string, error) {
	k, err := tree.ParseTraversalKind(kind)
	if err != nil {
		return "", err
	}
	textC := make(chan string, 1)
	err = s.run(ctx, "traverse", func(ctx context.Context) error {
		res := TraversalResult{Kind: k, Keys: s.bst.Traverse(k)}
		text := res.String()
		textC <- text
		if s.output != nil {
			s.output(text)
		}
		return s.seq.ReplaySequence(ctx, res.Keys)
	})
	select {
	case text := <-textC:
		return text, err
	default:
	}
	return "", err
}

// TraverseAll computes every traversal without animation. It holds the
// busy flag while reading, a running operation rejects it.
func (s *Session) TraverseAll() ([]TraversalResult, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, errors.Wrapf(ErrOperationInFlight, "%s", "traverse all")
	}
	defer s.busy.Store(false)
	return lo.Map(tree.TraversalKinds, func(kind tree.TraversalKind, _ int) TraversalResult {
		return TraversalResult{Kind: kind, Keys: s.bst.Traverse(kind)}
	}), nil
}

// Close releases the animation worker, a running animation is not interrupted.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.pool.Release()
}

func NewSession(opts ...SessionOption) (*Session, error) {
	cfg := &sessionCfg{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(cfg)
	}
	if cfg.bst == nil {
		cfg.bst = tree.NewBST[int]()
	}
	if cfg.renderer == nil {
		r, err := render.NewTreeRenderer[int](
			render.NewNopSurface(defaultSurfaceWidth, defaultSurfaceHeight),
			render.WithTreeRendererLogger[int](cfg.logger),
		)
		if err != nil {
			return nil, err
		}
		cfg.renderer = r
	}
	seq, err := anim.NewSequencer[int](cfg.bst, cfg.renderer, cfg.sequencerOptions()...)
	if err != nil {
		return nil, err
	}
	poolOpts := []ants.Option{ants.WithPreAlloc(true)}
	if cfg.logger != nil {
		poolOpts = append(poolOpts, ants.WithLogger(xlog.NewAntsXLogger(cfg.logger)))
	}
	pool, err := ants.NewPool(1, poolOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[viz] animation worker")
	}
	s := &Session{
		bst:      cfg.bst,
		seq:      seq,
		pool:     pool,
		notifier: cfg.notifier,
		output:   cfg.output,
	}
	if cfg.logger != nil {
		s.logger = cfg.logger.Named("viz")
	}
	return s, nil
}
