package domain

import "testing"

func TestTruckCollectRejectsNegativeAndOverflow(t *testing.T) {
	tr := NewTruck("t1", 100, 0, 0)

	tr.Collect(-10)
	if tr.Load != 0 {
		t.Fatalf("Load after negative collect = %d, want 0", tr.Load)
	}

	tr.Collect(80)
	if tr.Load != 80 {
		t.Fatalf("Load = %d, want 80", tr.Load)
	}

	// Beyond remaining capacity: ignored entirely, not clamped.
	tr.Collect(30)
	if tr.Load != 80 {
		t.Fatalf("Load after over-collect = %d, want 80", tr.Load)
	}
}

func TestTruckUnloadAlwaysEmpties(t *testing.T) {
	tr := NewTruck("t1", 100, 0, 0)

	for _, amount := range []int{0, 55, 100} {
		tr.Collect(amount)
		tr.Unload()
		if tr.Load != 0 {
			t.Fatalf("Load after unload = %d, want 0", tr.Load)
		}
	}
}

func TestTruckIsFullAndRemainingCapacity(t *testing.T) {
	tr := NewTruck("t1", 50, 0, 0)

	if tr.IsFull() {
		t.Fatal("empty truck must not be full")
	}
	if tr.RemainingCapacity() != 50 {
		t.Fatalf("RemainingCapacity = %d, want 50", tr.RemainingCapacity())
	}

	tr.Collect(50)
	if !tr.IsFull() {
		t.Fatal("truck at capacity must be full")
	}
	if tr.RemainingCapacity() != 0 {
		t.Fatalf("RemainingCapacity = %d, want 0", tr.RemainingCapacity())
	}
}

func TestNewTruckClampsInitialLoad(t *testing.T) {
	over := NewTruck("t1", 100, 150, 0)
	if over.Load != 100 {
		t.Fatalf("Load = %d, want 100", over.Load)
	}

	neg := NewTruck("t2", 100, -5, 0)
	if neg.Load != 0 {
		t.Fatalf("Load = %d, want 0", neg.Load)
	}
}

func TestTruckMoveTo(t *testing.T) {
	tr := NewTruck("t1", 100, 0, 3)
	tr.MoveTo(7)
	if tr.CurrentNode != 7 {
		t.Fatalf("CurrentNode = %d, want 7", tr.CurrentNode)
	}
}
