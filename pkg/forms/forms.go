// Package forms holds the form payloads accepted by the lunchly HTTP surface. The service binds
// requests into these types and clients use them to build requests.
package forms

import (
	"net/url"
	"strconv"
)

// CustomerForm is the body of the add and edit customer forms.
type CustomerForm struct {
	FirstName string `form:"firstName" binding:"required,notblank,max=100"`
	LastName  string `form:"lastName"  binding:"required,notblank,max=100"`
	Phone     string `form:"phone"     binding:"max=40"`
	Notes     string `form:"notes"`
}

// Values encodes the form for a form-encoded POST.
func (f CustomerForm) Values() url.Values {
	return url.Values{
		"firstName": {f.FirstName},
		"lastName":  {f.LastName},
		"phone":     {f.Phone},
		"notes":     {f.Notes},
	}
}

// ReservationForm is the body of the add and edit reservation forms. StartAt is kept as text
// so that a malformed date can be reported with a proper message.
type ReservationForm struct {
	StartAt   string `form:"startAt"   binding:"required"`
	NumGuests int    `form:"numGuests" binding:"required,min=1"`
	Notes     string `form:"notes"`
}

// Values encodes the form for a form-encoded POST.
func (f ReservationForm) Values() url.Values {
	return url.Values{
		"startAt":   {f.StartAt},
		"numGuests": {strconv.Itoa(f.NumGuests)},
		"notes":     {f.Notes},
	}
}
