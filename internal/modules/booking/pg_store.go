// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cabdesk/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS bookings (
            id             TEXT PRIMARY KEY,
            customer_name  TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            trip_type      TEXT NOT NULL,
            vehicle_class  TEXT NOT NULL DEFAULT '',
            pickup         JSONB NOT NULL,
            drops          JSONB NOT NULL,
            destination    JSONB NOT NULL,
            params         JSONB NOT NULL,
            fare           JSONB NOT NULL,
            message        TEXT NOT NULL,
            status         TEXT NOT NULL,
            status_version INT NOT NULL DEFAULT 0,
            created_at     TIMESTAMPTZ NOT NULL,
            confirmed_at   TIMESTAMPTZ,
            completed_at   TIMESTAMPTZ,
            cancelled_at   TIMESTAMPTZ,
            cancel_reason  TEXT
        );
        CREATE TABLE IF NOT EXISTS booking_state_events (
            id          BIGSERIAL PRIMARY KEY,
            booking_id  TEXT NOT NULL,
            from_status TEXT NOT NULL,
            to_status   TEXT NOT NULL,
            actor       TEXT NOT NULL,
            created_at  TIMESTAMPTZ NOT NULL
        )`)
	return err
}

func (s *PGStore) Create(ctx context.Context, b *Booking) error {
	pickup, drops, destination, params, fareRaw, err := encodeBooking(b)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO bookings (
            id, customer_name, customer_phone, trip_type, vehicle_class,
            pickup, drops, destination, params, fare, message,
            status, status_version, created_at
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8, $9, $10, $11,
            $12, $13, $14
        )`,
		string(b.ID), b.CustomerName, b.CustomerPhone, string(b.TripType), string(b.VehicleClass),
		pickup, drops, destination, params, fareRaw, b.Message,
		string(b.Status), b.StatusVersion, b.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, customer_name, customer_phone, trip_type, vehicle_class,
               pickup, drops, destination, params, fare, message,
               status, status_version, created_at,
               confirmed_at, completed_at, cancelled_at, cancel_reason
        FROM bookings
        WHERE id = $1`, string(id),
	)
	return scanBooking(row)
}

func (s *PGStore) List(ctx context.Context, status Status, limit int) ([]*Booking, error) {
	query := `
        SELECT id, customer_name, customer_phone, trip_type, vehicle_class,
               pickup, drops, destination, params, fare, message,
               status, status_version, created_at,
               confirmed_at, completed_at, cancelled_at, cancel_reason
        FROM bookings`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	if limit <= 0 {
		limit = 50
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PGStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason string) (bool, error) {
	var r *string
	if reason != "" {
		r = &reason
	}
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = $1,
            status_version = status_version + 1,
            confirmed_at = CASE WHEN $1 = 'confirmed' THEN NOW() ELSE confirmed_at END,
            completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
            cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END,
            cancel_reason = COALESCE($2, cancel_reason)
        WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to), r, string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO booking_state_events (booking_id, from_status, to_status, actor, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		string(e.BookingID), string(e.FromStatus), string(e.ToStatus), e.Actor, e.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	var pickup, drops, destination, params, fareRaw []byte
	var confirmedAt, completedAt, cancelledAt sql.NullTime
	var cancelReason sql.NullString

	err := row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerPhone, &b.TripType, &b.VehicleClass,
		&pickup, &drops, &destination, &params, &fareRaw, &b.Message,
		&b.Status, &b.StatusVersion, &b.CreatedAt,
		&confirmedAt, &completedAt, &cancelledAt, &cancelReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(pickup, &b.Pickup); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(drops, &b.Drops); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(destination, &b.Destination); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(params, &b.Params); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fareRaw, &b.Fare); err != nil {
		return nil, err
	}
	b.ConfirmedAt = toTimePtr(confirmedAt)
	b.CompletedAt = toTimePtr(completedAt)
	b.CancelledAt = toTimePtr(cancelledAt)
	if cancelReason.Valid {
		b.CancelReason = &cancelReason.String
	}
	return &b, nil
}

func encodeBooking(b *Booking) (pickup, drops, destination, params, fareRaw []byte, err error) {
	if pickup, err = json.Marshal(b.Pickup); err != nil {
		return
	}
	if b.Drops == nil {
		b.Drops = []Stop{}
	}
	if drops, err = json.Marshal(b.Drops); err != nil {
		return
	}
	if destination, err = json.Marshal(b.Destination); err != nil {
		return
	}
	if params, err = json.Marshal(b.Params); err != nil {
		return
	}
	fareRaw, err = json.Marshal(b.Fare)
	return
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

