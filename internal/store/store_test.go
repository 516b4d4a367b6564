package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
)

var customerHeader = []string{"id", "first_name", "last_name", "phone", "notes"}

var reservationHeader = []string{"id", "customer_id", "start_at", "num_guests", "notes"}

// createMockObjects builds a mock database handle and a mock object for defining our expected SQL
// calls.
func createMockObjects(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return db, mock
}

// expectPreparedStatements instructs the mock object to expect that the single-row statements
// of both tables are being prepared.
func expectPreparedStatements(mock sqlmock.Sqlmock) {
	mock.ExpectPrepare("INSERT INTO customers")
	mock.ExpectPrepare("SELECT (.+) FROM customers WHERE id = \\?")
	mock.ExpectPrepare("UPDATE customers")
	mock.ExpectPrepare("INSERT INTO reservations")
	mock.ExpectPrepare("SELECT (.+) FROM reservations WHERE id = \\?")
	mock.ExpectPrepare("UPDATE reservations")
}

// setupStore prepares the store against a fresh mock database.
func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock := createMockObjects(t)
	t.Cleanup(func() { db.Close() })
	expectPreparedStatements(mock)
	s, err := New(db)
	require.NoError(t, err)
	return s, mock
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestNewPrepareFailure(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	mock.ExpectPrepare("INSERT INTO customers").WillReturnError(errors.New("connection refused"))

	_, err := New(db)
	assert.ErrorContains(t, err, "connection refused")
	assertExpectations(t, mock)
}

func TestAll(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) FROM customers ORDER BY first_name, last_name, id").
		WillReturnRows(mock.NewRows(customerHeader).
			AddRow(2, "Ada", "Lovelace", "555-1212", "").
			AddRow(1, "Sam", "Smith", "", "regular"))

	customers, err := s.Customers.All(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, int64(2), customers[0].ID())
	assert.False(t, customers[0].IsNew())
	assert.Equal(t, "Ada Lovelace", customers[0].FullName())
	assert.Equal(t, "555-1212", customers[0].Phone)
	assert.Equal(t, "regular", customers[1].Notes)
	assertExpectations(t, mock)
}

// TestFind checks that the search term is lower-cased, wrapped in wildcards and applied to first,
// last and full name.
func TestFind(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE LOWER\\(first_name\\) LIKE \\?").
		WithArgs("%sam%", "%sam%", "%sam%").
		WillReturnRows(mock.NewRows(customerHeader).
			AddRow(1, "Sam", "Smith", "", "").
			AddRow(5, "SAMANTHA", "Jones", "", ""))

	customers, err := s.Customers.Find(context.Background(), "  SaM ")
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Sam", customers[0].FirstName)
	assert.Equal(t, "SAMANTHA", customers[1].FirstName)
	assertExpectations(t, mock)
}

func TestFindEscapesWildcards(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE").
		WithArgs(`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`).
		WillReturnRows(mock.NewRows(customerHeader))

	customers, err := s.Customers.Find(context.Background(), "50%_off")
	require.NoError(t, err)
	assert.Empty(t, customers)
	assertExpectations(t, mock)
}

// TestFindBlank checks that an empty or whitespace search term behaves like All.
func TestFindBlank(t *testing.T) {
	for _, term := range []string{"", "   "} {
		s, mock := setupStore(t)
		mock.ExpectQuery("SELECT (.+) FROM customers ORDER BY first_name").
			WillReturnRows(mock.NewRows(customerHeader).AddRow(1, "Sam", "Smith", "", ""))

		customers, err := s.Customers.Find(context.Background(), term)
		require.NoError(t, err)
		assert.Len(t, customers, 1)
		assertExpectations(t, mock)
	}
}

func TestGetCustomer(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE id = \\?").
		WithArgs(29).
		WillReturnRows(mock.NewRows(customerHeader).AddRow(29, "Erika", "Mustermann", "+49 0815 4711", "vegetarian"))

	c, err := s.Customers.Get(context.Background(), 29)
	require.NoError(t, err)
	assert.Equal(t, int64(29), c.ID())
	assert.Equal(t, "Erika", c.FirstName)
	assert.Equal(t, "Mustermann", c.LastName)
	assert.Equal(t, "+49 0815 4711", c.Phone)
	assert.Equal(t, "vegetarian", c.Notes)
	assertExpectations(t, mock)
}

func TestGetCustomerNotFound(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE id = \\?").
		WithArgs(999).
		WillReturnRows(mock.NewRows(customerHeader))

	_, err := s.Customers.Get(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assertExpectations(t, mock)
}

func TestGetCustomerStorageFailure(t *testing.T) {
	s, mock := setupStore(t)
	failure := errors.New("connection lost")
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE id = \\?").
		WithArgs(3).
		WillReturnError(failure)

	_, err := s.Customers.Get(context.Background(), 3)
	assert.ErrorIs(t, err, failure)
	assert.False(t, errors.Is(err, model.ErrNotFound))
	assertExpectations(t, mock)
}

// TestSaveNewCustomer checks that saving a new customer inserts a row and assigns the new id.
func TestSaveNewCustomer(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectExec("INSERT INTO customers").
		WithArgs("Ada", "Lovelace", "555-1212", "").
		WillReturnResult(sqlmock.NewResult(42, 1))

	c := model.NewCustomer("Ada", "Lovelace", "555-1212", "")
	require.NoError(t, s.Customers.Save(context.Background(), &c))
	assert.False(t, c.IsNew())
	assert.Equal(t, int64(42), c.ID())
	assertExpectations(t, mock)
}

// TestSaveExistingCustomer checks that saving a stored customer updates every editable field.
func TestSaveExistingCustomer(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectExec("UPDATE customers").
		WithArgs("Rudi", "Völler", "+49 1234567890", "prefers the terrace", 17).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := model.NewCustomer("Rudi", "Völler", "+49 1234567890", "prefers the terrace")
	c.Key = model.Persisted(17)
	require.NoError(t, s.Customers.Save(context.Background(), &c))
	assert.Equal(t, int64(17), c.ID())
	assertExpectations(t, mock)
}

func TestSaveExistingCustomerNotFound(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectExec("UPDATE customers").
		WithArgs("Rudi", "Völler", "", "", 9999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c := model.NewCustomer("Rudi", "Völler", "", "")
	c.Key = model.Persisted(9999)
	assert.ErrorIs(t, s.Customers.Save(context.Background(), &c), model.ErrNotFound)
	assertExpectations(t, mock)
}

// TestSaveInvalidCustomer checks that an invalid customer never reaches the database.
func TestSaveInvalidCustomer(t *testing.T) {
	s, mock := setupStore(t)

	c := model.NewCustomer("", "Lovelace", "", "")
	assert.ErrorIs(t, s.Customers.Save(context.Background(), &c), model.ErrValidation)
	assert.True(t, c.IsNew())
	assertExpectations(t, mock)
}

func TestCustomerReservations(t *testing.T) {
	s, mock := setupStore(t)
	first := time.Date(2024, time.January, 1, 19, 0, 0, 0, time.UTC)
	second := time.Date(2024, time.February, 14, 20, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE customer_id = \\? ORDER BY start_at").
		WithArgs(1).
		WillReturnRows(mock.NewRows(reservationHeader).
			AddRow(7, 1, first, 4, "window seat").
			AddRow(9, 1, second, 2, ""))

	c := model.NewCustomer("Ada", "Lovelace", "", "")
	c.Key = model.Persisted(1)
	reservations, err := s.Customers.Reservations(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, int64(7), reservations[0].ID())
	assert.Equal(t, int64(1), reservations[0].CustomerID())
	assert.Equal(t, first, reservations[0].StartAt)
	assert.Equal(t, 4, reservations[0].NumGuests)
	assert.Equal(t, "window seat", reservations[0].Notes)
	assert.Equal(t, second, reservations[1].StartAt)
	assertExpectations(t, mock)
}

// TestNewCustomerReservations checks that an unsaved customer has no reservations and that the
// database is not asked.
func TestNewCustomerReservations(t *testing.T) {
	s, mock := setupStore(t)

	reservations, err := s.Customers.Reservations(context.Background(), model.NewCustomer("Ada", "Lovelace", "", ""))
	require.NoError(t, err)
	assert.Empty(t, reservations)
	assertExpectations(t, mock)
}

func TestTopTen(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) COUNT\\(r.id\\) AS reservation_count (.+) ORDER BY reservation_count DESC, c.id ASC LIMIT \\?").
		WithArgs(10).
		WillReturnRows(mock.NewRows(append(customerHeader, "reservation_count")).
			AddRow(3, "Sam", "Smith", "", "", 5).
			AddRow(1, "Ada", "Lovelace", "", "", 2).
			AddRow(2, "Bob", "Baker", "", "", 2))

	ranked, err := s.Customers.TopTen(context.Background())
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(3), ranked[0].ID())
	assert.Equal(t, "Sam Smith", ranked[0].FullName())
	assert.Equal(t, 5, ranked[0].ReservationCount)
	assert.Equal(t, int64(1), ranked[1].ID())
	assert.Equal(t, 2, ranked[2].ReservationCount)
	assertExpectations(t, mock)
}

func TestGetReservation(t *testing.T) {
	s, mock := setupStore(t)
	start := time.Date(2024, time.January, 1, 19, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\?").
		WithArgs(7).
		WillReturnRows(mock.NewRows(reservationHeader).AddRow(7, 1, start, 4, "window seat"))

	r, err := s.Reservations.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), r.ID())
	assert.Equal(t, int64(1), r.CustomerID())
	assert.Equal(t, start, r.StartAt)
	assert.Equal(t, 4, r.NumGuests)
	assertExpectations(t, mock)
}

func TestGetReservationNotFound(t *testing.T) {
	s, mock := setupStore(t)
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\?").
		WithArgs(404).
		WillReturnRows(mock.NewRows(reservationHeader))

	_, err := s.Reservations.Get(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assertExpectations(t, mock)
}

func TestSaveNewReservation(t *testing.T) {
	s, mock := setupStore(t)
	r, err := model.NewReservation(1, "2024-01-01T19:00", 4, "window seat")
	require.NoError(t, err)
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(1, r.StartAt, 4, "window seat").
		WillReturnResult(sqlmock.NewResult(11, 1))

	require.NoError(t, s.Reservations.Save(context.Background(), &r))
	assert.Equal(t, int64(11), r.ID())
	assert.Equal(t, int64(1), r.CustomerID())
	assertExpectations(t, mock)
}

// TestSaveExistingReservation checks that the update leaves the customer id alone.
func TestSaveExistingReservation(t *testing.T) {
	s, mock := setupStore(t)
	start := time.Date(2024, time.March, 3, 18, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE reservations SET start_at = \\?, num_guests = \\?, notes = \\? WHERE id = \\?").
		WithArgs(start, 6, "birthday", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := model.LoadReservation(7, 1, start, 6, "birthday")
	require.NoError(t, s.Reservations.Save(context.Background(), &r))
	assertExpectations(t, mock)
}

func TestSaveInvalidReservation(t *testing.T) {
	s, mock := setupStore(t)

	r := model.LoadReservation(7, 1, time.Time{}, 2, "")
	assert.ErrorIs(t, s.Reservations.Save(context.Background(), &r), model.ErrValidation)
	assertExpectations(t, mock)
}
