package anim

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/bstviz/lib/tree"
)

const (
	SequencerStatsName = "bstviz/anim"
)

type sequencerStats struct {
	stepCounter   atomic.Int64
	replayCounter atomic.Int64
	steps         metric.Int64Counter
	replays       metric.Int64Counter
	pauses        metric.Int64Histogram
}

func (stats *sequencerStats) RecordStep(color tree.HighlightColor) {
	if stats == nil {
		return
	}
	stats.stepCounter.Add(1)
	stats.steps.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("color", color.String())),
	)
}

func (stats *sequencerStats) RecordReplay(kind string, steps int) {
	if stats == nil {
		return
	}
	stats.replayCounter.Add(1)
	stats.replays.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.Int("steps", steps),
		),
	)
}

func (stats *sequencerStats) RecordPause(elapsedMs int64) {
	if stats == nil {
		return
	}
	stats.pauses.Record(context.Background(), elapsedMs)
}

func (stats *sequencerStats) StepCount() int64 {
	if stats == nil {
		return 0
	}
	return stats.stepCounter.Load()
}

func (stats *sequencerStats) ReplayCount() int64 {
	if stats == nil {
		return 0
	}
	return stats.replayCounter.Load()
}

func newSequencerStats(name string) *sequencerStats {
	meterName := SequencerStatsName
	if len(name) > 0 {
		meterName = fmt.Sprintf("%s/%s", SequencerStatsName, name)
	}
	meter := otel.Meter(meterName)
	return &sequencerStats{
		steps: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"bstviz.anim.steps",
			metric.WithDescription("The number of rendered animation steps."),
		)),
		replays: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"bstviz.anim.replays",
			metric.WithDescription("The number of replayed step sequences."),
		)),
		pauses: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"bstviz.anim.pause",
			metric.WithDescription("The elapsed time of a step pause. In milliseconds."),
			metric.WithUnit("ms"),
		)),
	}
}
