package comps

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"property-comps/internal/parcl"
	"property-comps/internal/property"
	"property-comps/internal/rawcache"
	"property-comps/internal/storage"
)

// SearchClient is the property data provider.
type SearchClient interface {
	SearchAddress(ctx context.Context, addr property.Address) (*parcl.AddressSearchResponse, *parcl.Exchange, error)
	SearchComparables(ctx context.Context, crit property.SearchCriteria) (*parcl.ComparablesResponse, *parcl.Exchange, error)
	EventHistory(ctx context.Context, ids []int64, start, end time.Time) (*parcl.EventHistoryResponse, *parcl.Exchange, error)
}

// Persistence receives the resolved subject.
type Persistence interface {
	SaveCandidate(ctx context.Context, p property.Property, src storage.CandidateSource) error
}

// RawRecorder caches provider exchanges.
type RawRecorder interface {
	SaveExchange(ctx context.Context, ex *parcl.Exchange, meta rawcache.Meta) (int64, error)
}

// Request is one comparable resolution.
type Request struct {
	Address   property.Address
	Latitude  *float64
	Longitude *float64
	Details   *property.Details
	UserID    string
	SessionID string
}

// Resolver resolves a subject address into comparable properties.
type Resolver struct {
	client SearchClient
	store  Persistence
	raw    RawRecorder
	tuning Tuning

	now   func() time.Time
	newID func() string

	wg sync.WaitGroup
}

// NewResolver wires a Resolver. store and raw may be nil.
func NewResolver(client SearchClient, store Persistence, raw RawRecorder, tuning Tuning) *Resolver {
	return &Resolver{
		client: client,
		store:  store,
		raw:    raw,
		tuning: tuning,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Resolve runs address resolution, the normal search, the fallback search when
// the normal one is empty, and comparable selection. At most two comparable
// searches are issued, one after the other.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*property.Result, error) {
	if err := validateAddress(req.Address); err != nil {
		return nil, err
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.newID()
	}
	meta := rawcache.Meta{SessionID: sessionID, UserID: req.UserID}

	found, ex, err := r.client.SearchAddress(ctx, req.Address)
	r.record(ctx, ex, meta)
	if err != nil {
		return nil, err
	}
	if len(found.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", property.ErrNotFound, req.Address.Line)
	}
	subject := req.Details.Apply(found.Items[0].Property())
	meta.TargetPropertyID = subject.ID

	result := &property.Result{
		SessionID:            sessionID,
		TargetProperty:       subject,
		ComparableProperties: []property.Comparable{},
		AllProperties:        []property.AnnotatedProperty{},
	}
	if !subject.IsResidential() {
		log.Printf("[Resolver] session %s: property %d is %s, skipping comparable search", sessionID, subject.ID, subject.PropertyType)
		return result, nil
	}

	r.saveSubject(ctx, subject, req.UserID, sessionID)

	lat, lon, err := coordinates(req, subject)
	if err != nil {
		return nil, err
	}

	now := r.now()
	crit := r.tuning.BuildCriteria(subject, lat, lon, r.tuning.NormalRadiusMiles, false, now)
	candidates, events, err := r.search(ctx, crit, meta)
	if err != nil {
		return nil, err
	}

	usedFallback := false
	if len(candidates) == 0 {
		log.Printf("[Resolver] session %s: no comparables in normal search, retrying with fallback criteria", sessionID)
		crit = r.tuning.BuildCriteria(subject, lat, lon, r.tuning.NormalRadiusMiles, true, now)
		candidates, events, err = r.search(ctx, crit, meta)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			// usedFallbackCriteria stays false here even though the fallback ran.
			result.RadiusUsed = crit.RadiusMiles
			result.MonthsUsed = crit.Months
			return result, nil
		}
		usedFallback = true
	}

	events = r.tuning.TagOutliers(events)
	nearby := FilterNeighborhood(lat, lon, candidates, crit.RadiusMiles)

	if comps := r.tuning.SelectComparables(lat, lon, nearby, events); comps != nil {
		result.ComparableProperties = comps
	}
	result.AllProperties = r.tuning.Annotate(lat, lon, candidates, events)
	result.RadiusUsed = crit.RadiusMiles
	result.MonthsUsed = crit.Months
	result.UsedFallbackCriteria = usedFallback

	log.Printf("[Resolver] session %s: %d candidates, %d comparables (fallback=%v)",
		sessionID, len(candidates), len(result.ComparableProperties), usedFallback)
	return result, nil
}

func (r *Resolver) search(ctx context.Context, crit property.SearchCriteria, meta rawcache.Meta) ([]property.Property, []property.Event, error) {
	resp, ex, err := r.client.SearchComparables(ctx, crit)
	r.record(ctx, ex, meta)
	if err != nil {
		return nil, nil, err
	}
	candidates, events, err := resp.Properties()
	if err != nil {
		return nil, nil, &property.UpstreamError{Status: status(ex), Err: err}
	}
	return candidates, events, nil
}

// EventHistory returns the events of one property since start, newest first.
// A zero start means six months back.
func (r *Resolver) EventHistory(ctx context.Context, propertyID int64, start time.Time, userID string) ([]property.Event, error) {
	if propertyID <= 0 {
		return nil, property.InvalidInputf("property id must be positive")
	}
	if start.IsZero() {
		start = truncateDay(r.now()).AddDate(0, -6, 0)
	}

	resp, ex, err := r.client.EventHistory(ctx, []int64{propertyID}, start, time.Time{})
	r.record(ctx, ex, rawcache.Meta{SessionID: r.newID(), UserID: userID, TargetPropertyID: propertyID})
	if err != nil {
		return nil, err
	}
	events, err := resp.Events()
	if err != nil {
		return nil, &property.UpstreamError{Status: status(ex), Err: err}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

// Wait blocks until every raw response write started by the resolver has finished.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

// record caches a provider exchange in the background. It outlives the request.
func (r *Resolver) record(ctx context.Context, ex *parcl.Exchange, meta rawcache.Meta) {
	if r.raw == nil || ex == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if _, err := r.raw.SaveExchange(ctx, ex, meta); err != nil {
			log.Printf("[Resolver] session %s: caching %s response failed: %v", meta.SessionID, ex.Endpoint, err)
		}
	}()
}

func status(ex *parcl.Exchange) int {
	if ex == nil {
		return 0
	}
	return ex.Status
}

func (r *Resolver) saveSubject(ctx context.Context, subject property.Property, userID, sessionID string) {
	if r.store == nil {
		return
	}
	src := storage.CandidateSource{
		UserID:       userID,
		SessionID:    sessionID,
		SearchType:   "target",
		SearchSource: "address_search",
	}
	if err := r.store.SaveCandidate(ctx, subject, src); err != nil {
		log.Printf("[Resolver] session %s: saving subject %d failed: %v", sessionID, subject.ID, err)
	}
}

func validateAddress(a property.Address) error {
	if strings.TrimSpace(a.Line) == "" {
		return property.InvalidInputf("address is required")
	}
	if strings.TrimSpace(a.PostalCode) != "" {
		return nil
	}
	if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.State) == "" {
		return property.InvalidInputf("postal code or city and state are required")
	}
	return nil
}

// coordinates prefers the caller's pair over the resolved one. A pair with a zero
// component does not count.
func coordinates(req Request, subject property.Property) (float64, float64, error) {
	if req.Latitude != nil && req.Longitude != nil && *req.Latitude != 0 && *req.Longitude != 0 {
		return *req.Latitude, *req.Longitude, nil
	}
	if subject.Latitude != 0 && subject.Longitude != 0 {
		return subject.Latitude, subject.Longitude, nil
	}
	return 0, 0, property.InvalidInputf("no coordinates for property %d", subject.ID)
}
