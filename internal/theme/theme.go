package theme

// Theme is one of the fixed visual palettes. Selection is derived from
// the scenario seed and recomputed on demand; a Theme value is never
// mutated.
type Theme struct {
	Name               string
	BackgroundGradient [2]string // top, bottom
	Primary            string    // highlight / hook / CTA
	Secondary          string    // correct answer, timer bar
	Rim                string    // stage border, panel strokes
}

var themes = []Theme{
	{
		Name:               "energetic_yellow",
		BackgroundGradient: [2]string{"#0F172A", "#1E293B"},
		Primary:            "#FACC15",
		Secondary:          "#22C55E",
		Rim:                "#F8FAFC",
	},
	{
		Name:               "calm_blue",
		BackgroundGradient: [2]string{"#0D1B2A", "#1B3A5B"},
		Primary:            "#38BDF8",
		Secondary:          "#34D399",
		Rim:                "#E0F2FE",
	},
	{
		Name:               "vibrant_purple",
		BackgroundGradient: [2]string{"#18072D", "#32144E"},
		Primary:            "#E879F9",
		Secondary:          "#A78BFA",
		Rim:                "#FAF5FF",
	},
	{
		Name:               "fresh_green",
		BackgroundGradient: [2]string{"#072413", "#0E4223"},
		Primary:            "#84CC16",
		Secondary:          "#4ADE80",
		Rim:                "#ECFDF5",
	},
	{
		Name:               "classic_red",
		BackgroundGradient: [2]string{"#1C1917", "#3B2E2A"},
		Primary:            "#FB923C",
		Secondary:          "#F87171",
		Rim:                "#FEF2F2",
	},
}

// VariantCount is the number of particle-field / hook-animation styles.
const VariantCount = 3

// Count reports the number of available themes.
func Count() int { return len(themes) }

// SelectTheme maps a seed to a theme. Total over all integers: negative
// seeds are normalized with floor-mod so reruns of the same scenario
// always pick the same palette.
func SelectTheme(seed int64) Theme {
	return themes[floorMod(seed, int64(len(themes)))]
}

// SelectVariant maps a seed to a visual variant in [0, VariantCount).
func SelectVariant(seed int64) int {
	return int(floorMod(seed, VariantCount))
}

func floorMod(a, n int64) int64 {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
