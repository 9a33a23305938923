package anim

import (
	"time"

	"github.com/benz9527/bstviz/lib/infra"
	"github.com/benz9527/bstviz/xlog"
)

type SequencerOption[K infra.OrderedKey] func(*xSequencer[K])

func WithSequencerPauseInterval[K infra.OrderedKey](interval time.Duration) SequencerOption[K] {
	return func(seq *xSequencer[K]) {
		if interval < 0 {
			interval = 0
		}
		seq.interval = interval
	}
}

func WithSequencerPauser[K infra.OrderedKey](pauser Pauser) SequencerOption[K] {
	return func(seq *xSequencer[K]) {
		if pauser != nil {
			seq.pauser = pauser
		}
	}
}

func WithSequencerLogger[K infra.OrderedKey](logger xlog.XLogger) SequencerOption[K] {
	return func(seq *xSequencer[K]) {
		if logger != nil {
			seq.logger = logger.Named("anim")
		}
	}
}

// WithSequencerStats records otel metrics under the global meter provider.
func WithSequencerStats[K infra.OrderedKey](name string) SequencerOption[K] {
	return func(seq *xSequencer[K]) {
		seq.stats = newSequencerStats(name)
	}
}
