package viz

import (
	"time"

	"github.com/benz9527/bstviz/anim"
	"github.com/benz9527/bstviz/lib/tree"
	"github.com/benz9527/bstviz/xlog"
)

type sessionCfg struct {
	bst       tree.BST[int]
	renderer  anim.Renderer[int]
	pauser    anim.Pauser
	interval  *time.Duration
	logger    xlog.XLogger
	notifier  Notifier
	output    OutputFunc
	statsName *string
}

type SessionOption func(*sessionCfg)

// WithSessionTree starts the session from an existing tree, the session owns it afterwards.
func WithSessionTree(bst tree.BST[int]) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.bst = bst
	}
}

func WithSessionRenderer(renderer anim.Renderer[int]) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.renderer = renderer
	}
}

func WithSessionPauser(pauser anim.Pauser) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.pauser = pauser
	}
}

func WithSessionPauseInterval(interval time.Duration) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.interval = &interval
	}
}

func WithSessionLogger(logger xlog.XLogger) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.logger = logger
	}
}

func WithSessionNotifier(fn Notifier) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.notifier = fn
	}
}

func WithSessionOutput(fn OutputFunc) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.output = fn
	}
}

func WithSessionStats(name string) SessionOption {
	return func(cfg *sessionCfg) {
		cfg.statsName = &name
	}
}

func (cfg *sessionCfg) sequencerOptions() []anim.SequencerOption[int] {
	opts := make([]anim.SequencerOption[int], 0, 4)
	if cfg.pauser != nil {
		opts = append(opts, anim.WithSequencerPauser[int](cfg.pauser))
	}
	if cfg.interval != nil {
		opts = append(opts, anim.WithSequencerPauseInterval[int](*cfg.interval))
	}
	if cfg.logger != nil {
		opts = append(opts, anim.WithSequencerLogger[int](cfg.logger))
	}
	if cfg.statsName != nil {
		opts = append(opts, anim.WithSequencerStats[int](*cfg.statsName))
	}
	return opts
}
