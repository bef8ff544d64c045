package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/pgxscan"
)

var (
	ErrInsertFailed           = errors.New("insert operation failed")
	ErrTransactionStartFailed = errors.New("transaction start failed")
	ErrCommitFailed           = errors.New("transaction commit failed")
	ErrSelectFailed           = errors.New("select operation failed")
)

// InsertReading writes one row to readings inside its own transaction.
// The pooled connection is released on every return path.
func (db *DB) InsertReading(ctx context.Context, r Reading) error {
	const fn = "DB:InsertReading"
	return db.insertOne(ctx, fn, `
		INSERT INTO readings (
			device_id,
			sensor,
			value,
			ts,
			topic,
			raw
		) VALUES ($1, $2, $3, $4, $5, $6)
	`, r.DeviceID, r.Sensor, r.Value, r.Timestamp, r.Topic, r.Raw)
}

// InsertEvent writes one row to events inside its own transaction.
func (db *DB) InsertEvent(ctx context.Context, e Event) error {
	const fn = "DB:InsertEvent"
	return db.insertOne(ctx, fn, `
		INSERT INTO events (
			device_id,
			event_type,
			payload,
			topic,
			ts
		) VALUES ($1, $2, $3, $4, $5)
	`, e.DeviceID, e.EventType, e.Payload, e.Topic, e.Timestamp)
}

func (db *DB) insertOne(ctx context.Context, fn, query string, args ...any) (err error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrTransactionStartFailed, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = fmt.Errorf("%s:%w:%w", fn, ErrCommitFailed, cerr)
		}
	}()

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}

func (db *DB) LoadReadingsBetween(ctx context.Context, sensor string, start, end time.Time) ([]Reading, error) {
	const fn = "DB:LoadReadingsBetween"
	readings := []Reading{}
	err := pgxscan.Select(ctx, db.pool, &readings, `
			SELECT
				device_id,
				sensor,
				value,
				ts,
				topic,
				raw
			FROM readings
			WHERE sensor = $1
			AND ts >= $2
			AND ts <= $3
			ORDER BY ts ASC
		`, sensor, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return readings, nil
}

func (db *DB) LoadEventsBetween(ctx context.Context, eventType string, start, end time.Time) ([]Event, error) {
	const fn = "DB:LoadEventsBetween"
	events := []Event{}
	err := pgxscan.Select(ctx, db.pool, &events, `
			SELECT
				device_id,
				event_type,
				payload,
				topic,
				ts
			FROM events
			WHERE event_type = $1
			AND ts >= $2
			AND ts <= $3
			ORDER BY ts ASC
		`, eventType, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return events, nil
}

// LoadLatestReadings returns the newest reading of every device/sensor pair.
func (db *DB) LoadLatestReadings(ctx context.Context) ([]Reading, error) {
	const fn = "DB:LoadLatestReadings"
	readings := []Reading{}
	err := pgxscan.Select(ctx, db.pool, &readings, `
			SELECT DISTINCT ON (device_id, sensor)
				device_id,
				sensor,
				value,
				ts,
				topic,
				raw
			FROM readings
			ORDER BY device_id, sensor, ts DESC
		`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return readings, nil
}

// LoadLatestEvents returns the newest event of every device/event type pair.
func (db *DB) LoadLatestEvents(ctx context.Context) ([]Event, error) {
	const fn = "DB:LoadLatestEvents"
	events := []Event{}
	err := pgxscan.Select(ctx, db.pool, &events, `
			SELECT DISTINCT ON (device_id, event_type)
				device_id,
				event_type,
				payload,
				topic,
				ts
			FROM events
			ORDER BY device_id, event_type, ts DESC
		`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return events, nil
}
