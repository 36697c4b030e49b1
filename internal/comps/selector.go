package comps

import (
	"fmt"
	"sort"
	"strings"

	"property-comps/internal/property"
)

// LatestEvents indexes the most recent sale and rental event of each property.
// Ties on date keep the earlier event in source order.
func LatestEvents(events []property.Event) (sales, rentals map[int64]property.Event) {
	sorted := make([]property.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	sales = make(map[int64]property.Event)
	rentals = make(map[int64]property.Event)
	for _, e := range sorted {
		if e.IsSale() {
			if _, ok := sales[e.PropertyID]; !ok {
				sales[e.PropertyID] = e
			}
			continue
		}
		if e.IsRental() {
			if _, ok := rentals[e.PropertyID]; !ok {
				rentals[e.PropertyID] = e
			}
		}
	}
	return sales, rentals
}

// Annotate attaches the latest sale and rental event of each candidate along with
// its distance from the subject and display fields.
func (t Tuning) Annotate(lat, lon float64, candidates []property.Property, events []property.Event) []property.AnnotatedProperty {
	sales, rentals := LatestEvents(events)
	out := make([]property.AnnotatedProperty, 0, len(candidates))
	for _, c := range candidates {
		a := property.AnnotatedProperty{
			Property:      c,
			DistanceMiles: Distance(lat, lon, c.Latitude, c.Longitude),
		}
		if e, ok := sales[c.ID]; ok {
			a.SaleEvent = &e
		}
		if e, ok := rentals[c.ID]; ok {
			a.RentalEvent = &e
		}
		switch {
		case a.SaleEvent != nil && a.SaleEvent.Price != nil:
			a.Price = a.SaleEvent.Price
		case a.RentalEvent != nil && a.RentalEvent.Price != nil:
			a.Price = a.RentalEvent.Price
		}
		a.IsOutlier = (a.SaleEvent != nil && a.SaleEvent.IsOutlier) || (a.RentalEvent != nil && a.RentalEvent.IsOutlier)
		a.DisplayAddress = t.displayAddress(c, a.IsOutlier)
		out = append(out, a)
	}
	return out
}

// SelectComparables turns the neighborhood-filtered candidates into comparables,
// one per candidate and event kind, each flagged by its own event's outlier tag.
// A property with both a sale and a rental appears twice, as "<id>-sale" and
// "<id>-rental".
func (t Tuning) SelectComparables(lat, lon float64, candidates []property.Property, events []property.Event) []property.Comparable {
	var out []property.Comparable
	for _, a := range t.Annotate(lat, lon, candidates, events) {
		if a.SaleEvent != nil {
			out = append(out, t.comparable(a, *a.SaleEvent, "-sale"))
		}
		if a.RentalEvent != nil {
			out = append(out, t.comparable(a, *a.RentalEvent, "-rental"))
		}
	}
	return out
}

func (t Tuning) comparable(a property.AnnotatedProperty, e property.Event, suffix string) property.Comparable {
	return property.Comparable{
		ID:             fmt.Sprintf("%d%s", a.ID, suffix),
		Property:       a.Property,
		Event:          e,
		DistanceMiles:  a.DistanceMiles,
		IsOutlier:      e.IsOutlier,
		DisplayAddress: t.displayAddress(a.Property, e.IsOutlier),
	}
}

func (t Tuning) displayAddress(p property.Property, outlier bool) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Address, p.City} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if tail := strings.TrimSpace(p.State + " " + p.PostalCode); tail != "" {
		parts = append(parts, tail)
	}
	addr := strings.Join(parts, ", ")
	if outlier {
		addr += t.OutlierMarker
	}
	return addr
}
