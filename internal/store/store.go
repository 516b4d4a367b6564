package store

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Store gives access to the customers and reservations tables.
type Store struct {
	db           *sqlx.DB
	Customers    *CustomerStore
	Reservations *ReservationStore
}

// Open returns a MySQL database handle for the given data source name. The connection itself is
// established lazily on first use.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("mysql", dsn)
}

// New wraps the specified sql database with sqlx and prepares all single-row statements. The
// database argument can be a real database for production use or a mock database within unit
// tests.
func New(sqlDB *sql.DB) (*Store, error) {
	db := sqlx.NewDb(sqlDB, "mysql")
	customers, err := newCustomerStore(db)
	if err != nil {
		return nil, err
	}
	reservations, err := newReservationStore(db)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, Customers: customers, Reservations: reservations}, nil
}

// Close releases the prepared statements and the database handle.
func (s *Store) Close() error {
	s.Customers.close()
	s.Reservations.close()
	return s.db.Close()
}

// preparer collects the first error of a series of statement preparations.
type preparer struct {
	db  *sqlx.DB
	err error
}

func (p *preparer) named(query string) *sqlx.NamedStmt {
	if p.err != nil {
		return nil
	}
	stmt, err := p.db.PrepareNamed(query)
	if err != nil {
		p.err = fmt.Errorf("prepare %q: %w", query, err)
	}
	return stmt
}

func (p *preparer) plain(query string) *sqlx.Stmt {
	if p.err != nil {
		return nil
	}
	stmt, err := p.db.Preparex(query)
	if err != nil {
		p.err = fmt.Errorf("prepare %q: %w", query, err)
	}
	return stmt
}
