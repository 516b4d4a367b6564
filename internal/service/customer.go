package service

import (
	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
	"gitlab.com/dirk.krummacker/lunchly/internal/view"
	"gitlab.com/dirk.krummacker/lunchly/pkg/forms"
	"go.uber.org/zap"
)

// listCustomers shows all customers. With the URL parameter 'search' only the customers whose
// first name, last name or full name contains the search term are shown, ignoring case.
//
// Example calls:
//
//	> curl "http://localhost:8080/"
//	> curl "http://localhost:8080/?search=sam"
func (s *Service) listCustomers(c *gin.Context) {
	search := c.Query("search")
	customers, err := s.customers.Find(c.Request.Context(), search)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.log.Debug("listing customers", zap.String("search", search), zap.Int("count", len(customers)))
	s.render(c, view.CustomerList, gin.H{"customers": customers, "search": search})
}

// newCustomerForm shows the form for adding a customer.
func (s *Service) newCustomerForm(c *gin.Context) {
	s.render(c, view.CustomerNewForm, gin.H{})
}

// createCustomer stores the customer posted by the add form and redirects to its detail page.
//
// Example call:
//
//	> curl http://localhost:8080/add/ --data "firstName=Ada&lastName=Lovelace&phone=555-1212&notes="
func (s *Service) createCustomer(c *gin.Context) {
	var form forms.CustomerForm
	if !bindForm(c, &form) {
		return
	}
	customer := model.NewCustomer(form.FirstName, form.LastName, form.Phone, form.Notes)
	if err := s.customers.Save(c.Request.Context(), &customer); err != nil {
		s.abortWithError(c, err)
		return
	}
	redirectToCustomer(c, customer.ID())
}

// topTen shows the ten customers with the most reservations.
func (s *Service) topTen(c *gin.Context) {
	customers, err := s.customers.TopTen(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.render(c, view.CustomerTopTen, gin.H{"customers": customers})
}

// showCustomer shows the customer whose ID value matches the id parameter of the request URL,
// together with the customer's reservations.
//
// Example call:
//
//	> curl http://localhost:8080/56/
func (s *Service) showCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	reservations, err := s.customers.Reservations(ctx, customer)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.render(c, view.CustomerDetail, gin.H{"customer": customer, "reservations": reservations})
}

// editCustomerForm shows the form for editing a customer.
func (s *Service) editCustomerForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := s.customers.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.render(c, view.CustomerEditForm, gin.H{"customer": customer})
}

// updateCustomer replaces all editable fields of a customer with the posted values and redirects
// to the customer's detail page.
//
// Example call:
//
//	> curl http://localhost:8080/56/edit/ --data "firstName=Rudi&lastName=Völler&phone=0815&notes="
func (s *Service) updateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var form forms.CustomerForm
	if !bindForm(c, &form) {
		return
	}
	ctx := c.Request.Context()
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	customer.FirstName = form.FirstName
	customer.LastName = form.LastName
	customer.Phone = form.Phone
	customer.Notes = form.Notes
	if err := s.customers.Save(ctx, &customer); err != nil {
		s.abortWithError(c, err)
		return
	}
	redirectToCustomer(c, customer.ID())
}
