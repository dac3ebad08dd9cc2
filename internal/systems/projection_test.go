package systems

import (
	"slices"
	"testing"

	"cavesight/internal/domain"
)

func pos(x, y int) domain.Position {
	return domain.Position{X: x, Y: y}
}

func TestProjectPath(t *testing.T) {
	tests := []struct {
		name     string
		rangeMax int
		from, to domain.Position
		flags    ProjectFlag
		monster  *domain.Position
		wall     *domain.Position
		want     []domain.Position
		wantN    int
	}{
		{
			name: "Stop at destination", rangeMax: 20,
			from: pos(1, 1), to: pos(1, 6),
			want:  []domain.Position{pos(1, 2), pos(1, 3), pos(1, 4), pos(1, 5), pos(1, 6)},
			wantN: 5,
		},
		{
			name: "Shallow line", rangeMax: 20,
			from: pos(1, 1), to: pos(5, 3),
			want:  []domain.Position{pos(2, 1), pos(3, 2), pos(4, 2), pos(5, 3)},
			wantN: 4,
		},
		{
			name: "Thru flies to the wall", rangeMax: 20,
			from: pos(1, 1), to: pos(1, 3), flags: ProjectThru,
			want: []domain.Position{
				pos(1, 2), pos(1, 3), pos(1, 4), pos(1, 5), pos(1, 6),
				pos(1, 7), pos(1, 8), pos(1, 9), pos(1, 10), pos(1, 11),
			},
			wantN: 10,
		},
		{
			name: "Stop at monster", rangeMax: 20,
			from: pos(1, 1), to: pos(1, 8), flags: ProjectStop, monster: &domain.Position{X: 1, Y: 4},
			want:  []domain.Position{pos(1, 2), pos(1, 3), pos(1, 4)},
			wantN: 3,
		},
		{
			name: "Check passes monster", rangeMax: 20,
			from: pos(1, 1), to: pos(1, 8), flags: ProjectCheck, monster: &domain.Position{X: 1, Y: 4},
			want: []domain.Position{
				pos(1, 2), pos(1, 3), pos(1, 4), pos(1, 5), pos(1, 6), pos(1, 7), pos(1, 8),
			},
			wantN: -7,
		},
		{
			name: "Wall ends the path", rangeMax: 20,
			from: pos(1, 1), to: pos(1, 8), wall: &domain.Position{X: 1, Y: 5},
			want:  []domain.Position{pos(1, 2), pos(1, 3), pos(1, 4), pos(1, 5)},
			wantN: 4,
		},
		{
			name: "Range limit", rangeMax: 3,
			from: pos(1, 1), to: pos(1, 10),
			want:  []domain.Position{pos(1, 2), pos(1, 3), pos(1, 4)},
			wantN: 3,
		},
		{
			name: "Diagonal range counts distance", rangeMax: 6,
			from: pos(1, 1), to: pos(10, 10),
			want:  []domain.Position{pos(2, 2), pos(3, 3), pos(4, 4), pos(5, 5)},
			wantN: 4,
		},
		{
			name: "Same cell", rangeMax: 20,
			from: pos(4, 4), to: pos(4, 4),
			wantN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := openCave(t, 12, 12)
			if tt.monster != nil {
				c.SetMonsterIdx(*tt.monster, 1)
			}
			if tt.wall != nil {
				c.SetFeature(*tt.wall, domain.FeatWallExtra)
			}

			path := make([]domain.Position, tt.rangeMax)
			n := ProjectPath(c, path, tt.rangeMax, tt.from, tt.to, tt.flags)
			if n != tt.wantN {
				t.Fatalf("ProjectPath returned %d, want %d", n, tt.wantN)
			}
			if got := path[:abs(n)]; !slices.Equal(got, tt.want) {
				t.Errorf("path = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectPath_StopsAtGridEdge(t *testing.T) {
	c := createTestCave(t, ".....")
	path := make([]domain.Position, 20)

	n := ProjectPath(c, path, 20, pos(0, 0), pos(2, 0), ProjectThru)
	if n != 4 {
		t.Fatalf("ProjectPath returned %d, want 4", n)
	}
	if path[n-1] != pos(4, 0) {
		t.Errorf("last cell = %v, want (4,0)", path[n-1])
	}
}

func TestProjectable(t *testing.T) {
	c := openCave(t, 25, 12)
	c.SetMonsterIdx(pos(5, 5), 3)

	tests := []struct {
		name     string
		from, to domain.Position
		flags    ProjectFlag
		want     ProjectResult
	}{
		{"Open floor", pos(1, 1), pos(1, 6), 0, ProjectNotClear},
		{"Open floor with stop", pos(1, 1), pos(1, 6), ProjectStop, ProjectClear},
		{"Open floor with check", pos(1, 1), pos(1, 6), ProjectCheck, ProjectClear},
		{"Target is a wall", pos(1, 1), pos(1, 11), 0, ProjectNo},
		{"Same cell", pos(3, 3), pos(3, 3), ProjectStop, ProjectNo},
		{"Out of range", pos(1, 1), pos(23, 1), 0, ProjectNo},
		{"Monster in the way stops", pos(5, 1), pos(5, 9), ProjectStop, ProjectNo},
		{"Monster in the way noticed", pos(5, 1), pos(5, 9), ProjectCheck, ProjectNotClear},
		{"Monster at target", pos(5, 1), pos(5, 5), ProjectStop, ProjectClear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Projectable(c, tt.from, tt.to, tt.flags); got != tt.want {
				t.Errorf("Projectable(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
