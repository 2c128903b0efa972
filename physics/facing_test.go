package physics

import (
	"testing"

	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/vmath"
)

func TestFacingOf(t *testing.T) {
	tests := []struct {
		name   string
		in     vmath.Vec2
		want   component.Facing
		wantOK bool
		frame  int
	}{
		{"up", vmath.V2(0, 1), component.FacingUp, true, 22},
		{"down", vmath.V2(0, -1), component.FacingDown, true, 21},
		{"right", vmath.V2(1, 0), component.FacingRight, true, 23},
		{"left", vmath.V2(-1, 0), component.FacingLeft, true, 20},
		{"dominant horizontal", vmath.V2(-3, 1), component.FacingLeft, true, 20},
		{"dominant vertical", vmath.V2(1, -3), component.FacingDown, true, 21},
		{"diagonal tie favors vertical", vmath.V2(1, 1), component.FacingUp, true, 22},
		{"zero", vmath.Vec2{}, component.FacingDown, false, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FacingOf(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FacingOf(%+v) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.wantOK)
			}
			if got.Frame() != tt.frame {
				t.Errorf("Frame = %d, want %d", got.Frame(), tt.frame)
			}
		})
	}
}
