package domain

import "testing"

func TestBinUpdateFillClampsAtCapacity(t *testing.T) {
	b := NewBin("b1", "Market St", 100, 95, 10, 0)

	b.UpdateFill()

	if b.CurrentFill != 100 {
		t.Fatalf("CurrentFill = %d, want 100", b.CurrentFill)
	}
	if !b.IsOverflowing() {
		t.Fatal("bin at capacity must report overflowing")
	}

	// A further day keeps it pinned at capacity.
	b.UpdateFill()
	if b.CurrentFill != 100 {
		t.Fatalf("CurrentFill after second day = %d, want 100", b.CurrentFill)
	}
}

func TestBinCollectRoundTrip(t *testing.T) {
	b := NewBin("b1", "Market St", 100, 60, 10, 0)

	b.Collect(b.CurrentFill)

	if b.CurrentFill != 0 {
		t.Fatalf("CurrentFill = %d, want 0", b.CurrentFill)
	}
}

func TestBinCollectIgnoresNegativeAndClampsAtZero(t *testing.T) {
	b := NewBin("b1", "Market St", 100, 30, 10, 0)

	b.Collect(-5)
	if b.CurrentFill != 30 {
		t.Fatalf("CurrentFill after negative collect = %d, want 30", b.CurrentFill)
	}

	b.Collect(50)
	if b.CurrentFill != 0 {
		t.Fatalf("CurrentFill after over-collect = %d, want 0", b.CurrentFill)
	}
}

func TestBinAverageFillRateUsesRingBuffer(t *testing.T) {
	b := NewBin("b1", "Market St", 1000, 0, 0, 0)

	for i := 0; i < 7; i++ {
		b.RecordFillLevel(14)
	}
	if got := b.AverageFillRate(); got != 14 {
		t.Fatalf("AverageFillRate = %v, want 14", got)
	}

	// The eighth record overwrites the oldest slot.
	b.RecordFillLevel(70)
	want := float64(6*14+70) / 7
	if got := b.AverageFillRate(); got != want {
		t.Fatalf("AverageFillRate = %v, want %v", got, want)
	}
}

func TestBinAverageFillRateEmptyHistoryIsZero(t *testing.T) {
	b := NewBin("b1", "Market St", 100, 50, 10, 0)
	if got := b.AverageFillRate(); got != 0 {
		t.Fatalf("AverageFillRate = %v, want 0", got)
	}
}

func TestNewBinClampsInitialFill(t *testing.T) {
	over := NewBin("b1", "Market St", 100, 150, 10, 0)
	if over.CurrentFill != 100 {
		t.Fatalf("CurrentFill = %d, want 100", over.CurrentFill)
	}

	neg := NewBin("b2", "Market St", 100, -10, 10, 0)
	if neg.CurrentFill != 0 {
		t.Fatalf("CurrentFill = %d, want 0", neg.CurrentFill)
	}
}
