package domain

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"Same cell", Position{X: 3, Y: 3}, Position{X: 3, Y: 3}, 0},
		{"Horizontal", Position{X: 0, Y: 0}, Position{X: 7, Y: 0}, 7},
		{"Diagonal", Position{X: 0, Y: 0}, Position{X: 4, Y: 4}, 6},
		{"Knight", Position{X: 0, Y: 0}, Position{X: 2, Y: 1}, 2},
		{"Far", Position{X: 10, Y: 2}, Position{X: 0, Y: 7}, 12},
		{"Three-four", Position{X: 0, Y: 0}, Position{X: 3, Y: 4}, 5},
		{"Column", Position{X: 0, Y: 0}, Position{X: 0, Y: 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Distance(tt.a); got != tt.want {
				t.Errorf("distance must be symmetric: got %d", got)
			}
		})
	}
}

func TestDistanceFormula(t *testing.T) {
	for dx := -12; dx <= 12; dx++ {
		for dy := -12; dy <= 12; dy++ {
			ax, ay := abs(dx), abs(dy)
			want := max(ax, ay) + min(ax, ay)/2
			if got := Distance(Position{}, Position{X: dx, Y: dy}); got != want {
				t.Fatalf("Distance to (%d,%d) = %d, want %d", dx, dy, got, want)
			}
		}
	}
}

func TestChebyshevAndAdjacent(t *testing.T) {
	a := Position{X: 5, Y: 5}
	if got := Chebyshev(a, Position{X: 2, Y: 9}); got != 4 {
		t.Errorf("Chebyshev = %d, want 4", got)
	}
	if !a.IsAdjacent(Position{X: 6, Y: 4}) {
		t.Error("diagonal neighbour must be adjacent")
	}
	if a.IsAdjacent(a) {
		t.Error("cell is not adjacent to itself")
	}
	for d := 0; d < 8; d++ {
		if !a.IsAdjacent(a.Neighbor(d)) {
			t.Errorf("direction %d does not lead to a neighbour", d)
		}
	}
	if a.Neighbor(8) != a {
		t.Error("direction 8 must be the cell itself")
	}
}
