package comps

// Tuning holds the constants of the comparable search. Defaults come from
// DefaultTuning; config.LoadTuning overlays a YAML file on top.
type Tuning struct {
	OutlierMultiplier float64 `yaml:"outlier_multiplier"`
	OutlierMinSamples int     `yaml:"outlier_min_samples"`
	OutlierMarker     string  `yaml:"outlier_marker"`

	NormalRadiusMiles   float64 `yaml:"normal_radius_miles"`
	FallbackRadiusMiles float64 `yaml:"fallback_radius_miles"`
	MonthsBack          int     `yaml:"months_back"`

	NormalSqftLow    float64 `yaml:"normal_sqft_low"`
	NormalSqftHigh   float64 `yaml:"normal_sqft_high"`
	FallbackSqftLow  float64 `yaml:"fallback_sqft_low"`
	FallbackSqftHigh float64 `yaml:"fallback_sqft_high"`

	NormalYearSpread   int `yaml:"normal_year_spread"`
	FallbackYearSpread int `yaml:"fallback_year_spread"`

	DefaultBeds int `yaml:"default_beds"`
	// Used when the subject has no bathroom count.
	DefaultBaths int `yaml:"default_baths"`

	NormalDefaultSqft   [2]float64 `yaml:"normal_default_sqft"`
	FallbackDefaultSqft [2]float64 `yaml:"fallback_default_sqft"`

	PropertyTypes []string `yaml:"property_types"`
	EventNames    []string `yaml:"event_names"`
}

func DefaultTuning() Tuning {
	return Tuning{
		OutlierMultiplier: 2.5,
		OutlierMinSamples: 3,
		OutlierMarker:     " (Outlier)",

		NormalRadiusMiles:   1.0,
		FallbackRadiusMiles: 1.0,
		MonthsBack:          12,

		NormalSqftLow:    0.70,
		NormalSqftHigh:   1.30,
		FallbackSqftLow:  0.50,
		FallbackSqftHigh: 1.50,

		NormalYearSpread:   10,
		FallbackYearSpread: 20,

		DefaultBeds:  3,
		DefaultBaths: 1,

		NormalDefaultSqft:   [2]float64{800, 1050},
		FallbackDefaultSqft: [2]float64{300, 1550},

		PropertyTypes: []string{"SINGLE_FAMILY"},
		EventNames:    []string{"SOLD", "LISTED_RENT", "PRICE_CHANGE"},
	}
}
