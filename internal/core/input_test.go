package core

import "testing"

func TestActionMove(t *testing.T) {
	tests := []struct {
		action Action
		want   Coord
		ok     bool
	}{
		{ActionUp, Coord{0, -1}, true},
		{ActionDown, Coord{0, 1}, true},
		{ActionLeft, Coord{-1, 0}, true},
		{ActionRight, Coord{1, 0}, true},
		{ActionGrow, Coord{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			got, ok := tc.action.Move()
			if ok != tc.ok || got != tc.want {
				t.Errorf("Move() = (%v, %v), expected (%v, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}
