package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
)

// topTenLimit is the number of customers in the top ten report.
const topTenLimit = 10

const customerColumns = "id, first_name, last_name, phone, notes"

const (
	insertCustomerSQL = `
		INSERT INTO customers (first_name, last_name, phone, notes)
		VALUES (:first_name, :last_name, :phone, :notes)`
	selectCustomerSQL = `
		SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	updateCustomerSQL = `
		UPDATE customers
		SET first_name = :first_name, last_name = :last_name, phone = :phone, notes = :notes
		WHERE id = :id`
	allCustomersSQL = `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY first_name, last_name, id`
	findCustomersSQL = `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE LOWER(first_name) LIKE ?
			OR LOWER(last_name) LIKE ?
			OR LOWER(CONCAT(first_name, ' ', last_name)) LIKE ?
		ORDER BY first_name, last_name, id`
	customerReservationsSQL = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE customer_id = ?
		ORDER BY start_at, id`
	topTenSQL = `
		SELECT c.id, c.first_name, c.last_name, c.phone, c.notes, COUNT(r.id) AS reservation_count
		FROM customers AS c
		LEFT JOIN reservations AS r ON r.customer_id = c.id
		GROUP BY c.id, c.first_name, c.last_name, c.phone, c.notes
		ORDER BY reservation_count DESC, c.id ASC
		LIMIT ?`
)

// customerRow is the database representation of a customer.
type customerRow struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Phone     string `db:"phone"`
	Notes     string `db:"notes"`
}

type rankedCustomerRow struct {
	customerRow
	ReservationCount int `db:"reservation_count"`
}

func toCustomerRow(c *model.Customer) customerRow {
	return customerRow{
		ID:        c.ID(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Notes:     c.Notes,
	}
}

func (r customerRow) customer() model.Customer {
	c := model.NewCustomer(r.FirstName, r.LastName, r.Phone, r.Notes)
	c.Key = model.Persisted(r.ID)
	return c
}

func toCustomers(rows []customerRow) []model.Customer {
	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.customer())
	}
	return customers
}

// CustomerStore reads and writes the customers table.
type CustomerStore struct {
	db         *sqlx.DB
	insert     *sqlx.NamedStmt
	selectByID *sqlx.Stmt
	update     *sqlx.NamedStmt
}

func newCustomerStore(db *sqlx.DB) (*CustomerStore, error) {
	p := preparer{db: db}
	s := &CustomerStore{
		db:         db,
		insert:     p.named(insertCustomerSQL),
		selectByID: p.plain(selectCustomerSQL),
		update:     p.named(updateCustomerSQL),
	}
	if p.err != nil {
		return nil, p.err
	}
	return s, nil
}

func (s *CustomerStore) close() {
	s.insert.Close()
	s.selectByID.Close()
	s.update.Close()
}

// All returns every customer, ordered by first name and then last name.
func (s *CustomerStore) All(ctx context.Context) ([]model.Customer, error) {
	var rows []customerRow
	if err := s.db.SelectContext(ctx, &rows, allCustomersSQL); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return toCustomers(rows), nil
}

// Find returns the customers whose first name, last name or full name contains the search term,
// ignoring case. A blank term returns all customers.
func (s *CustomerStore) Find(ctx context.Context, term string) ([]model.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.All(ctx)
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var rows []customerRow
	if err := s.db.SelectContext(ctx, &rows, findCustomersSQL, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return toCustomers(rows), nil
}

// Get returns the customer with the given id. It fails with model.ErrNotFound if there is none.
func (s *CustomerStore) Get(ctx context.Context, id int64) (model.Customer, error) {
	var row customerRow
	err := s.selectByID.GetContext(ctx, &row, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, fmt.Errorf("customer %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("select customer %d: %w", id, err)
	}
	return row.customer(), nil
}

// Save inserts a new customer and assigns its id, or updates all fields of a stored customer.
func (s *CustomerStore) Save(ctx context.Context, c *model.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsNew() {
		result, err := s.insert.ExecContext(ctx, toCustomerRow(c))
		if err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}
		c.Key = model.Persisted(id)
		return nil
	}
	result, err := s.update.ExecContext(ctx, toCustomerRow(c))
	if err != nil {
		return fmt.Errorf("update customer %d: %w", c.ID(), err)
	}
	return checkUpdated(result, "customer", c.ID())
}

// Reservations returns the reservations of the customer, earliest first.
func (s *CustomerStore) Reservations(ctx context.Context, c model.Customer) ([]model.Reservation, error) {
	if c.IsNew() {
		return []model.Reservation{}, nil
	}
	var rows []reservationRow
	if err := s.db.SelectContext(ctx, &rows, customerReservationsSQL, c.ID()); err != nil {
		return nil, fmt.Errorf("select reservations of customer %d: %w", c.ID(), err)
	}
	reservations := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, row.reservation())
	}
	return reservations, nil
}

// TopTen returns the ten customers holding the most reservations, most first. Customers with the
// same number of reservations are ordered by id.
func (s *CustomerStore) TopTen(ctx context.Context) ([]model.RankedCustomer, error) {
	var rows []rankedCustomerRow
	if err := s.db.SelectContext(ctx, &rows, topTenSQL, topTenLimit); err != nil {
		return nil, fmt.Errorf("select top ten customers: %w", err)
	}
	ranked := make([]model.RankedCustomer, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, model.RankedCustomer{
			Customer:         row.customer(),
			ReservationCount: row.ReservationCount,
		})
	}
	return ranked, nil
}

// escapeLike escapes the wildcard characters of a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// checkUpdated turns an update that matched no row into model.ErrNotFound. The connection must
// report found rows rather than changed rows for this to hold.
func checkUpdated(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s %d: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, model.ErrNotFound)
	}
	return nil
}
