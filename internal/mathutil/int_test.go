package mathutil

import "testing"

func TestIntMinMax(t *testing.T) {
	if IntMin(3, 7) != 3 || IntMin(7, 3) != 3 {
		t.Error("IntMin should return the smaller value")
	}
	if IntMax(3, 7) != 7 || IntMax(7, 3) != 7 {
		t.Error("IntMax should return the larger value")
	}
}

func TestIntClamp(t *testing.T) {
	cases := []struct{ x, lo, hi, want int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, c := range cases {
		if got := IntClamp(c.x, c.lo, c.hi); got != c.want {
			t.Errorf("IntClamp(%d, %d, %d) = %d, want %d", c.x, c.lo, c.hi, got, c.want)
		}
	}
}
