package service

import (
	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
	"gitlab.com/dirk.krummacker/lunchly/internal/view"
	"gitlab.com/dirk.krummacker/lunchly/pkg/forms"
)

// addReservation books a reservation for the customer whose ID value matches the id parameter of
// the request URL and redirects to the customer's detail page. A start time that cannot be parsed
// is answered with BAD REQUEST and nothing is stored.
//
// Example call:
//
//	> curl http://localhost:8080/1/add-reservation/ --data "startAt=2024-01-01T19:00&numGuests=4&notes=window+seat"
func (s *Service) addReservation(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}
	var form forms.ReservationForm
	if !bindForm(c, &form) {
		return
	}
	reservation, err := model.NewReservation(customerID, form.StartAt, form.NumGuests, form.Notes)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		s.abortWithError(c, err)
		return
	}
	if err := s.reservations.Save(ctx, &reservation); err != nil {
		s.abortWithError(c, err)
		return
	}
	redirectToCustomer(c, customerID)
}

// editReservationForm shows the form for editing the reservation whose ID value matches the id
// parameter of the request URL.
func (s *Service) editReservationForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reservation, err := s.reservations.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.render(c, view.ReservationEditForm, gin.H{"reservation": reservation})
}

// updateReservation replaces start time, number of guests and notes of a reservation and
// redirects to the detail page of the customer holding it. The customer never changes.
//
// Example call:
//
//	> curl http://localhost:8080/reservations/7 --data "startAt=2024-01-01T20:00&numGuests=6&notes="
func (s *Service) updateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var form forms.ReservationForm
	if !bindForm(c, &form) {
		return
	}
	startAt, err := model.ParseStartAt(form.StartAt)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	ctx := c.Request.Context()
	reservation, err := s.reservations.Get(ctx, id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	reservation.StartAt = startAt
	reservation.NumGuests = form.NumGuests
	reservation.Notes = form.Notes
	if err := s.reservations.Save(ctx, &reservation); err != nil {
		s.abortWithError(c, err)
		return
	}
	redirectToCustomer(c, reservation.CustomerID())
}
