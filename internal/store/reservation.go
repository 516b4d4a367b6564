package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
)

const reservationColumns = "id, customer_id, start_at, num_guests, notes"

const (
	insertReservationSQL = `
		INSERT INTO reservations (customer_id, start_at, num_guests, notes)
		VALUES (:customer_id, :start_at, :num_guests, :notes)`
	selectReservationSQL = `
		SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	// customer_id is not part of the update: a reservation never moves to another customer.
	updateReservationSQL = `
		UPDATE reservations
		SET start_at = :start_at, num_guests = :num_guests, notes = :notes
		WHERE id = :id`
)

// reservationRow is the database representation of a reservation.
type reservationRow struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"`
	StartAt    time.Time `db:"start_at"`
	NumGuests  int       `db:"num_guests"`
	Notes      string    `db:"notes"`
}

func toReservationRow(r *model.Reservation) reservationRow {
	return reservationRow{
		ID:         r.ID(),
		CustomerID: r.CustomerID(),
		StartAt:    r.StartAt,
		NumGuests:  r.NumGuests,
		Notes:      r.Notes,
	}
}

func (r reservationRow) reservation() model.Reservation {
	return model.LoadReservation(r.ID, r.CustomerID, r.StartAt, r.NumGuests, r.Notes)
}

// ReservationStore reads and writes the reservations table.
type ReservationStore struct {
	insert     *sqlx.NamedStmt
	selectByID *sqlx.Stmt
	update     *sqlx.NamedStmt
}

func newReservationStore(db *sqlx.DB) (*ReservationStore, error) {
	p := preparer{db: db}
	s := &ReservationStore{
		insert:     p.named(insertReservationSQL),
		selectByID: p.plain(selectReservationSQL),
		update:     p.named(updateReservationSQL),
	}
	if p.err != nil {
		return nil, p.err
	}
	return s, nil
}

func (s *ReservationStore) close() {
	s.insert.Close()
	s.selectByID.Close()
	s.update.Close()
}

// Get returns the reservation with the given id. It fails with model.ErrNotFound if there is
// none.
func (s *ReservationStore) Get(ctx context.Context, id int64) (model.Reservation, error) {
	var row reservationRow
	err := s.selectByID.GetContext(ctx, &row, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, fmt.Errorf("reservation %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Reservation{}, fmt.Errorf("select reservation %d: %w", id, err)
	}
	return row.reservation(), nil
}

// Save inserts a new reservation and assigns its id, or updates start time, number of guests
// and notes of a stored reservation.
func (s *ReservationStore) Save(ctx context.Context, r *model.Reservation) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.IsNew() {
		result, err := s.insert.ExecContext(ctx, toReservationRow(r))
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		r.Key = model.Persisted(id)
		return nil
	}
	result, err := s.update.ExecContext(ctx, toReservationRow(r))
	if err != nil {
		return fmt.Errorf("update reservation %d: %w", r.ID(), err)
	}
	return checkUpdated(result, "reservation", r.ID())
}
