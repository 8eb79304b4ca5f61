package simulations

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ifplan/ifplan/internal/engine"
	"github.com/ifplan/ifplan/internal/models"
)

// Percent bounds accepted by sweeps and the sensitivity command. A percent
// maps to its slider multiplier, so -100 stops at x0.01.
const (
	MinPercent = -100
	MaxPercent = 100
)

// PercentRange expands from..to by step, inclusive of both ends when step
// lands on to.
func PercentRange(from, to, step int) ([]int, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	if from > to {
		return nil, fmt.Errorf("from (%d) must not exceed to (%d)", from, to)
	}
	if from < MinPercent || to > MaxPercent {
		return nil, fmt.Errorf("percent range must lie within [%d, %d]", MinPercent, MaxPercent)
	}

	var out []int
	for p := from; p <= to; p += step {
		out = append(out, p)
	}
	return out, nil
}

// Sweep evaluates in with one factor's multiplier set to the slider value
// of every percent p, keeping every other field. Points come back in the order of
// percents. Evaluations run concurrently and stop early when ctx is done.
func (s *Service) Sweep(ctx context.Context, in models.Input, factor models.Factor, percents []int) ([]SweepPoint, error) {
	if !factor.Valid() {
		return nil, fmt.Errorf("unknown sensitivity factor: %q", factor)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	for _, p := range percents {
		if p < MinPercent || p > MaxPercent {
			return nil, fmt.Errorf("percent %d outside [%d, %d]", p, MinPercent, MaxPercent)
		}
	}

	points := make([]SweepPoint, len(percents))
	field := factor.Field()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.sweepConcurrency)

	for i, p := range percents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m := models.PercentToMultiplier(p)
			adjusted := in
			field.Set(&adjusted, m)
			points[i] = SweepPoint{Percent: p, Multiplier: m, Output: engine.Calculate(adjusted)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweeping %s: %w", factor, err)
	}
	return points, nil
}
