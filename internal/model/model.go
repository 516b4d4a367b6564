package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxGuests is the largest party a single reservation may hold.
const MaxGuests = 1000

// Key records whether an entity has been stored yet and, if so, under which id.
// The zero value is a new, unsaved entity.
type Key struct {
	id        int64
	persisted bool
}

// Persisted returns the key of an entity that is stored under the given id.
func Persisted(id int64) Key {
	return Key{id: id, persisted: true}
}

// ID returns the storage id, or 0 while the entity is new.
func (k Key) ID() int64 {
	return k.id
}

// IsNew reports whether the entity has never been saved.
func (k Key) IsNew() bool {
	return !k.persisted
}

// Customer is the data structure for a person that can hold reservations.
// First name and last name are required, phone and notes are optional.
type Customer struct {
	Key
	FirstName string
	LastName  string
	Phone     string
	Notes     string
}

// NewCustomer builds a customer that has not been saved yet.
func NewCustomer(firstName, lastName, phone, notes string) Customer {
	return Customer{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Notes:     notes,
	}
}

// FullName is the first name and the last name separated by a space.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks the fields that must be present before a customer is written.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}
	return nil
}

// RankedCustomer is a customer together with the number of reservations they hold.
type RankedCustomer struct {
	Customer
	ReservationCount int
}

// Reservation is a booked visit of a customer. The customer is referenced by id only.
type Reservation struct {
	Key
	customerID int64
	StartAt    time.Time
	NumGuests  int
	Notes      string
}

// NewReservation builds an unsaved reservation for the customer with the given id. The start
// time is parsed from its form representation and a malformed value is rejected right away.
func NewReservation(customerID int64, startAt string, numGuests int, notes string) (Reservation, error) {
	start, err := ParseStartAt(startAt)
	if err != nil {
		return Reservation{}, err
	}
	r := Reservation{
		customerID: customerID,
		StartAt:    start,
		NumGuests:  numGuests,
		Notes:      notes,
	}
	if err := r.Validate(); err != nil {
		return Reservation{}, err
	}
	return r, nil
}

// LoadReservation rebuilds a reservation that was read from storage.
func LoadReservation(id, customerID int64, startAt time.Time, numGuests int, notes string) Reservation {
	return Reservation{
		Key:        Persisted(id),
		customerID: customerID,
		StartAt:    startAt,
		NumGuests:  numGuests,
		Notes:      notes,
	}
}

// CustomerID is the id of the customer holding the reservation. It cannot change after the
// reservation has been built.
func (r Reservation) CustomerID() int64 {
	return r.customerID
}

// Validate checks the fields that must be present before a reservation is written.
func (r Reservation) Validate() error {
	if r.customerID <= 0 {
		return fmt.Errorf("%w: reservation has no customer", ErrValidation)
	}
	if r.StartAt.IsZero() {
		return fmt.Errorf("%w: please enter a valid date and time", ErrValidation)
	}
	if r.NumGuests < 1 || r.NumGuests > MaxGuests {
		return fmt.Errorf("%w: number of guests must be between 1 and %d", ErrValidation, MaxGuests)
	}
	return nil
}

// FormattedStartAt renders the start time for humans, e.g. "January 2nd 2006, 7:00 pm".
func (r Reservation) FormattedStartAt() string {
	if r.StartAt.IsZero() {
		return ""
	}
	day := r.StartAt.Day()
	return fmt.Sprintf("%s %d%s %d, %s",
		r.StartAt.Month(), day, ordinalSuffix(day), r.StartAt.Year(), r.StartAt.Format("3:04 pm"))
}

// StartAtInput renders the start time as the value of a datetime-local input field.
func (r Reservation) StartAtInput() string {
	if r.StartAt.IsZero() {
		return ""
	}
	return r.StartAt.Format(inputLayout)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
