package terminal

import "testing"

func TestFits(t *testing.T) {
	tests := []struct {
		columns, width int
		want           bool
	}{
		{41, 80, true},
		{80, 80, true},
		{81, 80, false},
		{500, 0, true},
	}
	for _, tt := range tests {
		if got := Fits(tt.columns, tt.width); got != tt.want {
			t.Errorf("Fits(%d, %d) = %v, want %v", tt.columns, tt.width, got, tt.want)
		}
	}
}
