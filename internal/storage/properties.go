package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"property-comps/internal/property"
)

// SaveCandidate upserts a property by its provider id. An existing row only has
// its last_updated and session fields refreshed.
func (db *DB) SaveCandidate(ctx context.Context, p property.Property, src CandidateSource) error {
	now := db.now().UTC()
	query := `INSERT INTO properties (parcl_property_id, address, city, state, postal_code, county, bedrooms, bathrooms,
	              square_feet, year_built, latitude, longitude, property_type, user_id, session_id, search_type, search_source,
	              created_at, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
	          ON CONFLICT (parcl_property_id) DO UPDATE
	            SET last_updated = EXCLUDED.last_updated,
	                session_id = EXCLUDED.session_id,
	                user_id = COALESCE(EXCLUDED.user_id, properties.user_id),
	                search_type = EXCLUDED.search_type,
	                search_source = EXCLUDED.search_source`
	_, err := db.connection.ExecContext(ctx, query,
		p.ID,
		p.Address,
		p.City,
		p.State,
		p.PostalCode,
		nullString(p.County),
		p.Bedrooms,
		p.Bathrooms,
		p.SquareFeet,
		p.YearBuilt,
		p.Latitude,
		p.Longitude,
		nullString(p.PropertyType),
		nullString(src.UserID),
		nullString(src.SessionID),
		nullString(src.SearchType),
		nullString(src.SearchSource),
		now,
	)
	if err != nil {
		return fmt.Errorf("save property %d: %w", p.ID, err)
	}
	return nil
}

// InsertEvent stores an event unless one already exists for the same property,
// date and type. It reports whether a row was written.
func (db *DB) InsertEvent(ctx context.Context, e property.Event, sessionID string) (bool, error) {
	query := `INSERT INTO property_events (parcl_property_id, event_type, event_name, event_date, price,
	              owner_occupied_flag, new_construction_flag, investor_flag, entity_owner_name, session_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (parcl_property_id, event_date, event_type) DO NOTHING`
	res, err := db.connection.ExecContext(ctx, query,
		e.PropertyID,
		string(e.Type),
		e.Name,
		e.Date.Format("2006-01-02"),
		e.Price,
		e.OwnerOccupied.Ptr(),
		e.NewConstruction.Ptr(),
		e.Investor.Ptr(),
		nullString(e.EntityOwnerName),
		nullString(sessionID),
		db.now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert event for property %d: %w", e.PropertyID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return true, nil
	}
	return n > 0, nil
}

// ListEvents returns the stored events of a property, newest first.
func (db *DB) ListEvents(ctx context.Context, propertyID int64) ([]property.Event, error) {
	rows, err := db.connection.QueryContext(ctx, `
		SELECT parcl_property_id, event_type, event_name, event_date, price,
		       owner_occupied_flag, new_construction_flag, investor_flag, entity_owner_name
		FROM property_events
		WHERE parcl_property_id = $1
		ORDER BY event_date DESC, id ASC`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []property.Event
	for rows.Next() {
		var (
			e                property.Event
			typ, date        string
			price            sql.NullFloat64
			owner, newc, inv sql.NullBool
			entity           sql.NullString
		)
		if err := rows.Scan(&e.PropertyID, &typ, &e.Name, &date, &price, &owner, &newc, &inv, &entity); err != nil {
			return nil, err
		}
		e.Type = property.EventType(typ)
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if price.Valid {
			e.Price = &price.Float64
		}
		e.OwnerOccupied = triBool(owner)
		e.NewConstruction = triBool(newc)
		e.Investor = triBool(inv)
		e.EntityOwnerName = entity.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountProperties returns the number of stored properties.
func (db *DB) CountProperties(ctx context.Context) (int, error) {
	var n int
	err := db.connection.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func triBool(b sql.NullBool) property.TriBool {
	if !b.Valid {
		return property.Unknown
	}
	if b.Bool {
		return property.True
	}
	return property.False
}

// parseDate accepts both a bare date and the timestamp text Postgres returns for DATE columns.
func parseDate(s string) (time.Time, error) {
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad event date %q", s)
}
