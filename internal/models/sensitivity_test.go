package models

import "testing"

func TestSliderMapping(t *testing.T) {
	tests := []struct {
		pos        int
		multiplier float64
		percent    int
	}{
		{1, 0.01, -99},
		{50, 0.5, -50},
		{100, 1, 0},
		{135, 1.35, 35},
		{200, 2, 100},
		{0, 0.01, -99}, // clamped
		{250, 2, 100},  // clamped
	}

	for _, tt := range tests {
		if got := SliderToMultiplier(tt.pos); got != tt.multiplier {
			t.Errorf("SliderToMultiplier(%d) = %v, want %v", tt.pos, got, tt.multiplier)
		}
		if got := SliderPercent(tt.pos); got != tt.percent {
			t.Errorf("SliderPercent(%d) = %d, want %d", tt.pos, got, tt.percent)
		}
	}
}

func TestMultiplierToSlider(t *testing.T) {
	tests := []struct {
		m    float64
		want int
	}{
		{1, 100},
		{1.4, 140},
		{1.35, 135},
		{0, 100},
		{0.004, 1},
		{3, 200},
	}
	for _, tt := range tests {
		if got := MultiplierToSlider(tt.m); got != tt.want {
			t.Errorf("MultiplierToSlider(%v) = %d, want %d", tt.m, got, tt.want)
		}
	}
}

func TestPercentToSlider(t *testing.T) {
	if got := PercentToSlider(-20); got != 80 {
		t.Errorf("PercentToSlider(-20) = %d, want 80", got)
	}
	if got := PercentToSlider(-100); got != SliderMin {
		t.Errorf("PercentToSlider(-100) = %d, want %d", got, SliderMin)
	}
}

func TestPercentToMultiplier(t *testing.T) {
	tests := []struct {
		pct  int
		want float64
	}{
		{-100, 0.01},
		{-99, 0.01},
		{-20, 0.8},
		{0, 1},
		{35, 1.35},
		{100, 2},
	}

	for _, tt := range tests {
		if got := PercentToMultiplier(tt.pct); got != tt.want {
			t.Errorf("PercentToMultiplier(%d) = %v, want %v", tt.pct, got, tt.want)
		}
		if got, want := PercentToMultiplier(tt.pct), SliderToMultiplier(PercentToSlider(tt.pct)); got != want {
			t.Errorf("PercentToMultiplier(%d) = %v, slider gives %v", tt.pct, got, want)
		}
	}
}

func TestParseFactor(t *testing.T) {
	for _, s := range []string{"preco", "varPreco"} {
		f, err := ParseFactor(s)
		if err != nil || f != FactorPreco {
			t.Errorf("ParseFactor(%q) = %q, %v", s, f, err)
		}
	}
	if _, err := ParseFactor("milk"); err == nil {
		t.Error("expected error for unknown factor")
	}
}

func TestSensitivity_RoundTrip(t *testing.T) {
	in := DefaultInput()
	s := SensitivityOf(in)

	if s[FactorCOE] != 140 || s[FactorPreco] != 135 || s[FactorDPL] != 100 {
		t.Fatalf("unexpected positions: %v", s)
	}

	out := s.Apply(in)
	if out != in {
		t.Errorf("applying the input's own sensitivity changed it")
	}
}

func TestSensitivity_ApplyPartial(t *testing.T) {
	in := DefaultInput()
	out := Sensitivity{FactorDPL: 150}.Apply(in)

	if out.VarDPL != 1.5 {
		t.Errorf("VarDPL = %v, want 1.5", out.VarDPL)
	}
	if out.VarCOE != in.VarCOE || out.VarPreco != in.VarPreco {
		t.Error("factors absent from the map must be kept")
	}
	if in.VarDPL != 1 {
		t.Error("Apply must not mutate its argument")
	}
}

func TestFactor_Label(t *testing.T) {
	if got := FactorMS.Label(); got != "Var. Consumo MS" {
		t.Errorf("FactorMS.Label() = %q", got)
	}
}
