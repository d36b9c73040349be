package theme

import (
	"math"
	"testing"
)

func TestSelectThemeTotality(t *testing.T) {
	seeds := []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64 + 1}
	for _, seed := range seeds {
		th := SelectTheme(seed)
		if th.Name == "" {
			t.Errorf("seed %d: empty theme", seed)
		}
	}
}

func TestSelectThemePeriodicity(t *testing.T) {
	n := int64(Count())
	for _, seed := range []int64{0, 3, -7, 1000} {
		a := SelectTheme(seed)
		b := SelectTheme(seed + n)
		if a.Name != b.Name {
			t.Errorf("seed %d and %d picked different themes: %s vs %s", seed, seed+n, a.Name, b.Name)
		}
	}
}

func TestSelectVariantRangeAndPeriodicity(t *testing.T) {
	for _, seed := range []int64{0, 1, 2, -1, -2, -3, 999, -999} {
		v := SelectVariant(seed)
		if v < 0 || v >= VariantCount {
			t.Errorf("seed %d: variant %d out of [0,%d)", seed, v, VariantCount)
		}
		if SelectVariant(seed+VariantCount) != v {
			t.Errorf("seed %d: variant not periodic", seed)
		}
	}
}

func TestFloorModNegativeSeeds(t *testing.T) {
	// seed -1 must select the last theme, not fault or pick theme 1.
	if got, want := SelectTheme(-1).Name, themes[Count()-1].Name; got != want {
		t.Errorf("SelectTheme(-1) = %s, want %s", got, want)
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		bg   string
		want string
	}{
		{"#FFFFFF", "#000000"},
		{"#000000", "#FFFFFF"},
		{"#FACC15", "#000000"}, // bright yellow
		{"#0F172A", "#FFFFFF"}, // deep slate
		{"#22C55E", "#000000"}, // medium green triggers black at 0.5
		{"not-a-color", "#FFFFFF"},
	}
	for _, tt := range tests {
		if got := ContrastColor(tt.bg); got != tt.want {
			t.Errorf("ContrastColor(%s) = %s, want %s", tt.bg, got, tt.want)
		}
	}
}

func TestParseFallback(t *testing.T) {
	c := Parse("#102030")
	if c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0xFF {
		t.Errorf("Parse(#102030) = %+v", c)
	}
	bad := Parse("nonsense")
	if bad.R != 0xFF || bad.G != 0xFF || bad.B != 0xFF {
		t.Errorf("malformed input should fall back to white, got %+v", bad)
	}
}

func TestBlendEndpoints(t *testing.T) {
	if got := Blend("#000000", "#FFFFFF", 0); got != "#000000" {
		t.Errorf("Blend t=0 should be the first stop, got %s", got)
	}
	if got := Blend("#000000", "#FFFFFF", 1); got != "#ffffff" {
		t.Errorf("Blend t=1 should be the second stop, got %s", got)
	}
	mid := Parse(Blend("#000000", "#FFFFFF", 0.5))
	if mid.R < 0x70 || mid.R > 0x90 {
		t.Errorf("Blend t=0.5 should be near gray, got %+v", mid)
	}
	if Blend("#000000", "#FFFFFF", -3) != Blend("#000000", "#FFFFFF", 0) {
		t.Error("t below 0 should clamp to the first stop")
	}
	if got := Blend("junk", "#FFFFFF", 0.5); got != "#FFFFFF" {
		t.Errorf("malformed stop should fall back to white, got %s", got)
	}
}

func TestThemeGradientsParse(t *testing.T) {
	for _, th := range themes {
		for _, hex := range []string{th.BackgroundGradient[0], th.BackgroundGradient[1], th.Primary, th.Secondary, th.Rim} {
			c := Parse(hex)
			if hex != "#FFFFFF" && c.R == 0xFF && c.G == 0xFF && c.B == 0xFF {
				t.Errorf("theme %s: color %s failed to parse", th.Name, hex)
			}
		}
	}
}
