package engine

import "testing"

func TestCalcProgress(t *testing.T) {
	testCases := []struct {
		name     string
		answered int
		total    int
		want     int
	}{
		{"no questions", 0, 0, 0},
		{"negative total", 2, -1, 0},
		{"nothing answered", 0, 10, 0},
		{"everything answered", 10, 10, 100},
		{"two of three rounds up", 2, 3, 67},
		{"one of three rounds down", 1, 3, 33},
		{"half", 5, 10, 50},
		{"negative answered clamps to zero", -3, 10, 0},
		{"answered above total clamps to total", 12, 10, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalcProgress(tc.answered, tc.total)
			if got != tc.want {
				t.Errorf("CalcProgress(%d, %d) = %d, want %d", tc.answered, tc.total, got, tc.want)
			}
		})
	}
}
