package colony

import "testing"

func TestNewField(t *testing.T) {
	f := NewField(3, 2.5, 0.5)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if got := f.At(i, j); got != 2.5 {
				t.Errorf("At(%d, %d) = %v, want 2.5", i, j, got)
			}
		}
	}
}

func TestEvaporateDecays(t *testing.T) {
	f := NewField(4, 1.0, 0.3)
	zero := NewDeposits(4)

	prev := f.At(1, 2)
	for round := 0; round < 50; round++ {
		f.Evaporate()
		f.Reinforce(zero)

		got := f.At(1, 2)
		if got >= prev {
			t.Fatalf("round %d: trail %v did not decrease from %v", round, got, prev)
		}
		if got <= 0 {
			t.Fatalf("round %d: trail reached %v", round, got)
		}
		prev = got
	}
}

func TestEvaporateRate(t *testing.T) {
	f := NewField(2, 1.0, 0.25)
	f.Evaporate()
	if got := f.At(0, 1); got != 0.75 {
		t.Errorf("At(0, 1) after one evaporation = %v, want 0.75", got)
	}
}

func TestReinforceSymmetric(t *testing.T) {
	f := NewField(4, 1.0, 0.5)
	d := NewDeposits(4)
	d.AddPath([]int{2, 0, 3}, 0.5)
	d.Add(3, 0, 0.25)

	f.Evaporate()
	f.Reinforce(d)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if f.At(i, j) != f.At(j, i) {
				t.Errorf("trail[%d][%d]=%v differs from trail[%d][%d]=%v", i, j, f.At(i, j), j, i, f.At(j, i))
			}
		}
	}

	tests := []struct {
		i, j int
		want float64
	}{
		{2, 0, 0.5 + 0.5},
		{0, 3, 0.5 + 0.75},
		{1, 2, 0.5},
	}
	for _, tt := range tests {
		if got := f.At(tt.i, tt.j); got != tt.want {
			t.Errorf("At(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestDepositsIgnoreNonPositive(t *testing.T) {
	d := NewDeposits(2)
	d.Add(0, 1, -1)
	d.Add(0, 1, 0)
	if got := d.At(1, 0); got != 0 {
		t.Errorf("At(1, 0) = %v, want 0", got)
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	f := NewField(3, 1.0, 0.5)
	snap := f.Snapshot()

	d := NewDeposits(3)
	d.Add(0, 1, 10)
	f.Evaporate()
	f.Reinforce(d)

	if got := snap.At(0, 1); got != 1.0 {
		t.Errorf("snapshot changed after field update: At(0, 1) = %v, want 1", got)
	}
	if got := f.At(0, 1); got != 10.5 {
		t.Errorf("field At(0, 1) = %v, want 10.5", got)
	}
}

func TestEmptyField(t *testing.T) {
	f := NewField(0, 1.0, 0.5)
	f.Evaporate()
	f.Reinforce(NewDeposits(0))
	if f.N() != 0 {
		t.Errorf("N() = %d, want 0", f.N())
	}
	_ = f.Snapshot()
}
