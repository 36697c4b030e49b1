package property

import "time"

// Property types reported by the provider.
const (
	TypeSingleFamily = "SINGLE_FAMILY"
	TypeCondo        = "CONDO"
	TypeTownhouse    = "TOWNHOUSE"
	TypeOther        = "OTHER"
)

// EventType is the broad event category (SALE, RENTAL, LISTING).
type EventType string

const (
	EventTypeSale    EventType = "SALE"
	EventTypeRental  EventType = "RENTAL"
	EventTypeListing EventType = "LISTING"
)

// Event names the comparable search asks for.
const (
	EventSold        = "SOLD"
	EventListedRent  = "LISTED_RENT"
	EventPriceChange = "PRICE_CHANGE"
)

// Property is a subject or candidate property. ID is the provider-assigned identifier.
type Property struct {
	ID           int64   `json:"id"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode"`
	County       string  `json:"county,omitempty"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	SquareFeet   int     `json:"squareFeet"`
	YearBuilt    int     `json:"yearBuilt"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PropertyType string  `json:"propertyType"`
}

// IsResidential reports whether comparables are computed for this property type.
func (p Property) IsResidential() bool {
	return p.PropertyType == TypeSingleFamily || p.PropertyType == TypeOther
}

// Details carries caller-corrected attributes applied over the resolved subject.
// Zero fields are left untouched.
type Details struct {
	Bedrooms     int     `json:"bedrooms,omitempty"`
	Bathrooms    float64 `json:"bathrooms,omitempty"`
	SquareFeet   int     `json:"squareFeet,omitempty"`
	YearBuilt    int     `json:"yearBuilt,omitempty"`
	PropertyType string  `json:"propertyType,omitempty"`
}

// Apply returns p with the non-zero fields of d copied over.
func (d *Details) Apply(p Property) Property {
	if d == nil {
		return p
	}
	if d.Bedrooms > 0 {
		p.Bedrooms = d.Bedrooms
	}
	if d.Bathrooms > 0 {
		p.Bathrooms = d.Bathrooms
	}
	if d.SquareFeet > 0 {
		p.SquareFeet = d.SquareFeet
	}
	if d.YearBuilt > 0 {
		p.YearBuilt = d.YearBuilt
	}
	if d.PropertyType != "" {
		p.PropertyType = d.PropertyType
	}
	return p
}

// Event is a sale/rental/listing event of a property.
type Event struct {
	PropertyID      int64     `json:"propertyId"`
	Type            EventType `json:"eventType"`
	Name            string    `json:"eventName"`
	Date            time.Time `json:"eventDate"`
	Price           *float64  `json:"price"`
	OwnerOccupied   TriBool   `json:"ownerOccupied"`
	NewConstruction TriBool   `json:"newConstruction"`
	Investor        TriBool   `json:"investor"`
	EntityOwnerName string    `json:"entityOwnerName,omitempty"`
	IsOutlier       bool      `json:"isOutlier"`
}

// IsSale reports whether the event counts as a sale.
func (e Event) IsSale() bool {
	return e.Type == EventTypeSale || e.Name == EventSold
}

// IsRental reports whether the event counts as a rental listing.
func (e Event) IsRental() bool {
	return e.Type == EventTypeRental && (e.Name == EventListedRent || e.Name == EventPriceChange)
}

// Address is the free-form subject address supplied by the caller.
type Address struct {
	Line       string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Range is an inclusive numeric bound. A zero Max means unbounded.
type Range[T int | float64] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// SearchCriteria is the comparable search filter.
type SearchCriteria struct {
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	RadiusMiles   float64        `json:"radiusMiles"`
	PropertyTypes []string       `json:"propertyTypes"`
	Beds          Range[int]     `json:"beds"`
	Baths         Range[int]     `json:"baths"`
	SquareFeet    Range[float64] `json:"squareFeet"`
	YearBuilt     Range[int]     `json:"yearBuilt"`
	EventNames    []string       `json:"eventNames"`
	MinEventDate  time.Time      `json:"minEventDate"`
	MaxEventDate  time.Time      `json:"maxEventDate"`
	Months        int            `json:"months"`
	Fallback      bool           `json:"fallback"`
}

// Comparable is one candidate joined with exactly one of its events.
type Comparable struct {
	ID             string   `json:"id"`
	Property       Property `json:"property"`
	Event          Event    `json:"event"`
	DistanceMiles  float64  `json:"distanceMiles"`
	IsOutlier      bool     `json:"isOutlier"`
	DisplayAddress string   `json:"displayAddress"`
}

// AnnotatedProperty is a candidate with its most recent sale and rental events attached.
type AnnotatedProperty struct {
	Property
	SaleEvent      *Event   `json:"saleEvent,omitempty"`
	RentalEvent    *Event   `json:"rentalEvent,omitempty"`
	Price          *float64 `json:"price"`
	DistanceMiles  float64  `json:"distanceMiles"`
	IsOutlier      bool     `json:"isOutlier"`
	DisplayAddress string   `json:"displayAddress"`
}

// Result is what a resolution returns to its caller.
type Result struct {
	SessionID            string              `json:"sessionId"`
	TargetProperty       Property            `json:"targetProperty"`
	ComparableProperties []Comparable        `json:"comparableProperties"`
	AllProperties        []AnnotatedProperty `json:"allProperties"`
	RadiusUsed           float64             `json:"radiusUsed"`
	MonthsUsed           int                 `json:"monthsUsed"`
	UsedFallbackCriteria bool                `json:"usedFallbackCriteria"`
}
