package comps

import (
	"math"

	"property-comps/internal/property"
)

const earthRadiusMiles = 3958.8

// Distance returns the haversine great-circle distance in miles.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FilterNeighborhood keeps candidates within radius miles of the subject.
// A candidate sitting on the subject's exact coordinates is the subject itself and is dropped.
func FilterNeighborhood(lat, lon float64, candidates []property.Property, radius float64) []property.Property {
	out := make([]property.Property, 0, len(candidates))
	for _, c := range candidates {
		if c.Latitude == lat && c.Longitude == lon {
			continue
		}
		if Distance(lat, lon, c.Latitude, c.Longitude) <= radius {
			out = append(out, c)
		}
	}
	return out
}
