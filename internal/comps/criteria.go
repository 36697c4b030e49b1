package comps

import (
	"math"
	"time"

	"property-comps/internal/property"
)

// BuildCriteria derives the comparable search filter for a subject.
//
// Normal mode pins beds and baths to the subject and allows ±30% square footage.
// Fallback mode widens beds/baths by one, allows ±50% square footage and always
// searches FallbackRadiusMiles regardless of radius. The event window ends at now.
func (t Tuning) BuildCriteria(subject property.Property, lat, lon, radius float64, fallback bool, now time.Time) property.SearchCriteria {
	c := property.SearchCriteria{
		Latitude:      lat,
		Longitude:     lon,
		RadiusMiles:   radius,
		PropertyTypes: append([]string(nil), t.PropertyTypes...),
		EventNames:    append([]string(nil), t.EventNames...),
		Months:        t.MonthsBack,
		Fallback:      fallback,
	}

	end := truncateDay(now)
	c.MaxEventDate = end
	c.MinEventDate = end.AddDate(0, -t.MonthsBack, 0)

	beds := subject.Bedrooms
	if beds <= 0 {
		beds = t.DefaultBeds
	}
	baths := int(math.Floor(subject.Bathrooms))
	if baths <= 0 {
		baths = t.DefaultBaths
	}

	if !fallback {
		c.Beds = property.Range[int]{Min: beds, Max: beds}
		c.Baths = property.Range[int]{Min: baths, Max: baths}
		c.SquareFeet = sqftRange(subject.SquareFeet, t.NormalSqftLow, t.NormalSqftHigh, t.NormalDefaultSqft)
		c.YearBuilt = yearRange(subject.YearBuilt, t.NormalYearSpread)
		return c
	}

	c.RadiusMiles = t.FallbackRadiusMiles
	c.Beds = property.Range[int]{Min: max(1, beds-1), Max: beds + 1}
	c.Baths = property.Range[int]{Min: max(1, baths-1), Max: baths + 1}
	c.SquareFeet = sqftRange(subject.SquareFeet, t.FallbackSqftLow, t.FallbackSqftHigh, t.FallbackDefaultSqft)
	c.YearBuilt = yearRange(subject.YearBuilt, t.FallbackYearSpread)
	return c
}

func sqftRange(sqft int, low, high float64, def [2]float64) property.Range[float64] {
	if sqft <= 0 {
		return property.Range[float64]{Min: def[0], Max: def[1]}
	}
	return property.Range[float64]{
		Min: math.Round(float64(sqft) * low),
		Max: math.Round(float64(sqft) * high),
	}
}

func yearRange(year, spread int) property.Range[int] {
	if year <= 0 || spread <= 0 {
		return property.Range[int]{}
	}
	return property.Range[int]{Min: year - spread, Max: year + spread}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
