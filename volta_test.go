package notation

import "testing"

func TestVoltaContains(t *testing.T) {
	v := NewVolta(100, 200, 1)
	cases := []struct {
		tick int
		want bool
	}{
		{99, false},
		{100, true},
		{150, true},
		{199, true},
		{200, false},
	}
	for _, c := range cases {
		if got := v.Contains(c.tick); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.tick, got, c.want)
		}
	}
}

func TestVoltaHasEnding(t *testing.T) {
	v := NewVolta(0, 100, 1, 3)
	if !v.HasEnding(1) {
		t.Errorf("expected HasEnding(1) to be true")
	}
	if v.HasEnding(2) {
		t.Errorf("expected HasEnding(2) to be false")
	}
	if !v.HasEnding(3) {
		t.Errorf("expected HasEnding(3) to be true")
	}
}

func TestVoltaWithNoEndings(t *testing.T) {
	v := NewVolta(0, 100)
	if v.HasEnding(1) {
		t.Errorf("a volta with no endings should not apply to any pass")
	}
}
