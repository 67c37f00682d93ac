package services

import (
	"math"

	"waste-collection-sim/internal/domain"
)

// Day-count values returned by PredictDaysToOverflow.
const (
	// DaysOverflowing marks a bin that is already at or over capacity.
	DaysOverflowing = -1
	// DaysNever marks a bin with no usable fill rate.
	DaysNever = math.MaxInt
)

// DefaultCriticalThreshold is the projected day count at or under which a
// bin counts as critical.
const DefaultCriticalThreshold = 2

// OverflowPredictor estimates how soon bins overflow from their recorded
// fill history.
type OverflowPredictor struct {
	CriticalThreshold int
}

func NewOverflowPredictor(thresholdDays int) OverflowPredictor {
	return OverflowPredictor{CriticalThreshold: thresholdDays}
}

// PredictDaysToOverflow estimates whole days until the bin overflows.
// The historical ring-buffer average is preferred; the bin's declared fill
// rate is the fallback when history is empty or averages to zero. The
// estimate is floored and never below one day.
func (p OverflowPredictor) PredictDaysToOverflow(b *domain.Bin) int {
	if b.IsOverflowing() {
		return DaysOverflowing
	}

	rate := b.AverageFillRate()
	if rate <= 0 {
		rate = float64(b.FillRate)
	}
	if rate <= 0 {
		return DaysNever
	}

	days := int(float64(b.Capacity-b.CurrentFill) / rate)
	if days < 1 {
		days = 1
	}
	return days
}

// IsCritical reports whether the bin is overflowing or projected to
// overflow within the critical threshold.
func (p OverflowPredictor) IsCritical(b *domain.Bin) bool {
	days := p.PredictDaysToOverflow(b)
	return days == DaysOverflowing || days <= p.CriticalThreshold
}

// OverflowRisk maps a bin to an urgency score: zero for an overflowing
// bin, otherwise the projected days to overflow. Lower means more urgent.
func (p OverflowPredictor) OverflowRisk(b *domain.Bin) float64 {
	days := p.PredictDaysToOverflow(b)
	if days == DaysOverflowing {
		return 0
	}
	return float64(days)
}
