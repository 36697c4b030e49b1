package parcl

import (
	"fmt"
	"math"
	"strings"
	"time"

	"property-comps/internal/property"
)

var eventDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parcl: bad event_date %q", s)
}

func intOf(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}

func floatOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Property converts an address search hit.
func (it AddressItem) Property() property.Property {
	addr := it.Address
	if it.Unit != "" {
		addr = addr + " " + it.Unit
	}
	return property.Property{
		ID:           it.ParclPropertyID,
		Address:      addr,
		City:         it.City,
		State:        it.StateAbbreviation,
		PostalCode:   it.ZipCode,
		County:       it.County,
		Bedrooms:     intOf(it.Bedrooms),
		Bathrooms:    floatOf(it.Bathrooms),
		SquareFeet:   intOf(it.SquareFootage),
		YearBuilt:    intOf(it.YearBuilt),
		Latitude:     floatOf(it.Latitude),
		Longitude:    floatOf(it.Longitude),
		PropertyType: strings.ToUpper(it.PropertyType),
	}
}

// Properties converts every address search hit, in provider order.
func (r *AddressSearchResponse) Properties() []property.Property {
	out := make([]property.Property, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.Property())
	}
	return out
}

// Event converts one provider event. propertyID is used when the item has none.
func (it EventItem) Event(propertyID int64) (property.Event, error) {
	date, err := parseEventDate(it.EventDate)
	if err != nil {
		return property.Event{}, err
	}
	if it.ParclPropertyID != 0 {
		propertyID = it.ParclPropertyID
	}
	return property.Event{
		PropertyID:      propertyID,
		Type:            property.EventType(strings.ToUpper(it.EventType)),
		Name:            strings.ToUpper(it.EventName),
		Date:            date,
		Price:           it.Price,
		OwnerOccupied:   it.OwnerOccupiedFlag,
		NewConstruction: it.NewConstructionFlag,
		Investor:        it.InvestorFlag,
		EntityOwnerName: it.EntityOwnerName,
	}, nil
}

// Properties flattens the comparable search into candidates and their events.
func (r *ComparablesResponse) Properties() ([]property.Property, []property.Event, error) {
	props := make([]property.Property, 0, len(r.Data))
	var events []property.Event
	for _, d := range r.Data {
		m := d.PropertyMetadata
		props = append(props, property.Property{
			ID:           d.ParclPropertyID,
			Address:      m.Address1,
			City:         m.City,
			State:        m.State,
			PostalCode:   m.Zip5,
			County:       m.County,
			Bedrooms:     intOf(m.Bedrooms),
			Bathrooms:    floatOf(m.Bathrooms),
			SquareFeet:   intOf(m.SquareFootage),
			YearBuilt:    intOf(m.YearBuilt),
			Latitude:     floatOf(m.Latitude),
			Longitude:    floatOf(m.Longitude),
			PropertyType: strings.ToUpper(m.PropertyType),
		})
		for _, it := range d.Events {
			e, err := it.Event(d.ParclPropertyID)
			if err != nil {
				return nil, nil, fmt.Errorf("property %d: %w", d.ParclPropertyID, err)
			}
			events = append(events, e)
		}
	}
	return props, events, nil
}

// Events converts the event history items.
func (r *EventHistoryResponse) Events() ([]property.Event, error) {
	out := make([]property.Event, 0, len(r.Items))
	for _, it := range r.Items {
		e, err := it.Event(0)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
