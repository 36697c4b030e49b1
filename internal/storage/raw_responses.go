package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("storage: not found")

const rawResponseColumns = `id, endpoint, request_params, response_body, http_status, request_hash,
	session_id, user_id, target_property_id, processing_status, error_message, created_at, updated_at`

// UpsertRawResponse inserts r keyed by its request hash. On conflict the payload,
// status, session, user and target are overwritten and the existing id is kept.
// The status is always reset to pending.
func (db *DB) UpsertRawResponse(ctx context.Context, r *RawResponse) (int64, error) {
	now := db.now().UTC()
	query := `INSERT INTO raw_api_responses (endpoint, request_params, response_body, http_status, request_hash,
	              session_id, user_id, target_property_id, processing_status, error_message, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, $10, $10)
	          ON CONFLICT (request_hash) DO UPDATE
	            SET response_body = EXCLUDED.response_body,
	                http_status = EXCLUDED.http_status,
	                session_id = EXCLUDED.session_id,
	                user_id = EXCLUDED.user_id,
	                target_property_id = EXCLUDED.target_property_id,
	                processing_status = EXCLUDED.processing_status,
	                error_message = NULL,
	                updated_at = EXCLUDED.updated_at
	          RETURNING id`

	var id int64
	err := db.connection.QueryRowContext(ctx, query,
		r.Endpoint,
		string(r.RequestParams),
		string(r.ResponseBody),
		r.HTTPStatus,
		r.RequestHash,
		r.SessionID,
		r.UserID,
		r.TargetPropertyID,
		string(StatusPending),
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert raw response: %w", err)
	}
	return id, nil
}

func (db *DB) GetRawResponse(ctx context.Context, id int64) (*RawResponse, error) {
	row := db.connection.QueryRowContext(ctx,
		`SELECT `+rawResponseColumns+` FROM raw_api_responses WHERE id = $1`, id)
	r, err := scanRawResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// RawResponseExists checks for a cached row with the given request hash.
func (db *DB) RawResponseExists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM raw_api_responses WHERE request_hash = $1)`
	err := db.connection.QueryRowContext(ctx, query, hash).Scan(&exists)
	return exists, err
}

// UpdateRawResponseStatus moves a row through the ingestion lifecycle.
func (db *DB) UpdateRawResponseStatus(ctx context.Context, id int64, status ProcessingStatus, errMsg *string) error {
	res, err := db.connection.ExecContext(ctx,
		`UPDATE raw_api_responses SET processing_status = $1, error_message = $2, updated_at = $3 WHERE id = $4`,
		string(status), errMsg, db.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update raw response %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRawResponsesByStatus returns up to limit rows in the given state, oldest first.
func (db *DB) ListRawResponsesByStatus(ctx context.Context, status ProcessingStatus, limit int) ([]*RawResponse, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT `+rawResponseColumns+` FROM raw_api_responses WHERE processing_status = $1 ORDER BY id ASC LIMIT $2`,
		string(status), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*RawResponse
	for rows.Next() {
		r, err := scanRawResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountRawResponsesByStatus groups the raw response rows by processing status.
func (db *DB) CountRawResponsesByStatus(ctx context.Context) (map[ProcessingStatus]int, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT processing_status, COUNT(*) FROM raw_api_responses GROUP BY processing_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[ProcessingStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[ProcessingStatus(status)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRawResponse(s rowScanner) (*RawResponse, error) {
	var (
		r       RawResponse
		params  []byte
		body    []byte
		status  string
		userID  sql.NullString
		target  sql.NullInt64
		errText sql.NullString
	)
	err := s.Scan(&r.ID, &r.Endpoint, &params, &body, &r.HTTPStatus, &r.RequestHash,
		&r.SessionID, &userID, &target, &status, &errText, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.RequestParams = params
	r.ResponseBody = body
	r.Status = ProcessingStatus(status)
	if userID.Valid {
		r.UserID = &userID.String
	}
	if target.Valid {
		r.TargetPropertyID = &target.Int64
	}
	if errText.Valid {
		r.ErrorMessage = &errText.String
	}
	return &r, nil
}
