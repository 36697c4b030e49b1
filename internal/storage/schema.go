package storage

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS raw_api_responses (
		id                 BIGSERIAL PRIMARY KEY,
		endpoint           TEXT NOT NULL,
		request_params     JSONB NOT NULL,
		response_body      TEXT NOT NULL,
		http_status        INTEGER NOT NULL,
		request_hash       TEXT NOT NULL UNIQUE,
		session_id         TEXT NOT NULL,
		user_id            TEXT,
		target_property_id BIGINT,
		processing_status  TEXT NOT NULL DEFAULT 'pending',
		error_message      TEXT,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_raw_api_responses_status ON raw_api_responses(processing_status)`,
	`CREATE TABLE IF NOT EXISTS properties (
		parcl_property_id BIGINT PRIMARY KEY,
		address           TEXT NOT NULL,
		city              TEXT NOT NULL,
		state             TEXT NOT NULL,
		postal_code       TEXT NOT NULL,
		county            TEXT,
		bedrooms          INTEGER,
		bathrooms         DOUBLE PRECISION,
		square_feet       INTEGER,
		year_built        INTEGER,
		latitude          DOUBLE PRECISION,
		longitude         DOUBLE PRECISION,
		property_type     TEXT,
		user_id           TEXT,
		session_id        TEXT,
		search_type       TEXT,
		search_source     TEXT,
		created_at        TIMESTAMPTZ NOT NULL,
		last_updated      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS property_events (
		id                    BIGSERIAL PRIMARY KEY,
		parcl_property_id     BIGINT NOT NULL,
		event_type            TEXT NOT NULL,
		event_name            TEXT NOT NULL,
		event_date            DATE NOT NULL,
		price                 DOUBLE PRECISION,
		owner_occupied_flag   BOOLEAN,
		new_construction_flag BOOLEAN,
		investor_flag         BOOLEAN,
		entity_owner_name     TEXT,
		session_id            TEXT,
		created_at            TIMESTAMPTZ NOT NULL,
		UNIQUE (parcl_property_id, event_date, event_type)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS raw_api_responses (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		endpoint           TEXT NOT NULL,
		request_params     TEXT NOT NULL,
		response_body      TEXT NOT NULL,
		http_status        INTEGER NOT NULL,
		request_hash       TEXT NOT NULL UNIQUE,
		session_id         TEXT NOT NULL,
		user_id            TEXT,
		target_property_id INTEGER,
		processing_status  TEXT NOT NULL DEFAULT 'pending',
		error_message      TEXT,
		created_at         DATETIME NOT NULL,
		updated_at         DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_raw_api_responses_status ON raw_api_responses(processing_status)`,
	`CREATE TABLE IF NOT EXISTS properties (
		parcl_property_id INTEGER PRIMARY KEY,
		address           TEXT NOT NULL,
		city              TEXT NOT NULL,
		state             TEXT NOT NULL,
		postal_code       TEXT NOT NULL,
		county            TEXT,
		bedrooms          INTEGER,
		bathrooms         REAL,
		square_feet       INTEGER,
		year_built        INTEGER,
		latitude          REAL,
		longitude         REAL,
		property_type     TEXT,
		user_id           TEXT,
		session_id        TEXT,
		search_type       TEXT,
		search_source     TEXT,
		created_at        DATETIME NOT NULL,
		last_updated      DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS property_events (
		id                    INTEGER PRIMARY KEY AUTOINCREMENT,
		parcl_property_id     INTEGER NOT NULL,
		event_type            TEXT NOT NULL,
		event_name            TEXT NOT NULL,
		event_date            TEXT NOT NULL,
		price                 REAL,
		owner_occupied_flag   BOOLEAN,
		new_construction_flag BOOLEAN,
		investor_flag         BOOLEAN,
		entity_owner_name     TEXT,
		session_id            TEXT,
		created_at            DATETIME NOT NULL,
		UNIQUE (parcl_property_id, event_date, event_type)
	)`,
}
