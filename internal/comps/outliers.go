package comps

import (
	"math"
	"sort"

	"property-comps/internal/property"
)

// TagOutliers sets IsOutlier on every priced event whose price is above
// OutlierMultiplier times the median of its partition. Sales and rentals are
// partitioned separately; a partition with fewer than OutlierMinSamples priced
// events is never tagged. Events are tagged in place and none are removed.
func (t Tuning) TagOutliers(events []property.Event) []property.Event {
	var sales, rentals []int
	for i := range events {
		events[i].IsOutlier = false
		if events[i].Price == nil {
			continue
		}
		switch {
		case events[i].IsSale():
			sales = append(sales, i)
		case events[i].IsRental():
			rentals = append(rentals, i)
		}
	}

	for _, idx := range [][]int{sales, rentals} {
		bound := t.upperBound(events, idx)
		for _, i := range idx {
			if *events[i].Price > bound {
				events[i].IsOutlier = true
			}
		}
	}
	return events
}

func (t Tuning) upperBound(events []property.Event, idx []int) float64 {
	if len(idx) < t.OutlierMinSamples {
		return math.Inf(1)
	}
	prices := make([]float64, 0, len(idx))
	for _, i := range idx {
		prices = append(prices, *events[i].Price)
	}
	return median(prices) * t.OutlierMultiplier
}

// median of an even-sized sample is the mean of the two middle values.
func median(prices []float64) float64 {
	sort.Float64s(prices)
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}
