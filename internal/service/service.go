package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
	"go.uber.org/zap"
)

// Customers is the storage of customers as used by the HTTP handlers.
type Customers interface {
	All(ctx context.Context) ([]model.Customer, error)
	Find(ctx context.Context, term string) ([]model.Customer, error)
	Get(ctx context.Context, id int64) (model.Customer, error)
	Save(ctx context.Context, c *model.Customer) error
	Reservations(ctx context.Context, c model.Customer) ([]model.Reservation, error)
	TopTen(ctx context.Context) ([]model.RankedCustomer, error)
}

// Reservations is the storage of reservations as used by the HTTP handlers.
type Reservations interface {
	Get(ctx context.Context, id int64) (model.Reservation, error)
	Save(ctx context.Context, r *model.Reservation) error
}

// Renderer turns a page name and its data into HTML.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Service answers the HTTP requests of the reservation manager.
type Service struct {
	customers    Customers
	reservations Reservations
	views        Renderer
	log          *zap.Logger
}

// New returns a service working on the given storage and views.
func New(customers Customers, reservations Reservations, views Renderer, log *zap.Logger) *Service {
	return &Service{
		customers:    customers,
		reservations: reservations,
		views:        views,
		log:          log,
	}
}

// SetupHttpRouter initializes the router and registers all endpoints. Mutating endpoints refuse
// requests without a body before any handler runs.
func (s *Service) SetupHttpRouter(requestLogging bool) *gin.Engine {
	registerValidations()

	router := gin.New()
	router.Use(requestID())
	if requestLogging {
		router.Use(requestLogger(s.log))
	}
	router.Use(gin.Recovery())

	router.GET("/", s.listCustomers)
	router.GET("/add/", s.newCustomerForm)
	router.POST("/add/", requireBody, s.createCustomer)
	router.GET("/top-ten", s.topTen)
	router.GET("/:id/", s.showCustomer)
	router.GET("/:id/edit/", s.editCustomerForm)
	router.POST("/:id/edit/", requireBody, s.updateCustomer)
	router.POST("/:id/add-reservation/", requireBody, s.addReservation)
	router.GET("/reservations/:id", s.editReservationForm)
	router.POST("/reservations/:id", requireBody, s.updateReservation)
	return router
}

// render writes the page only when the template executed completely, so that a failing template
// yields a clean error response instead of half a page.
func (s *Service) render(c *gin.Context, name string, data gin.H) {
	var buf bytes.Buffer
	if err := s.views.Render(&buf, name, data); err != nil {
		s.abortWithError(c, fmt.Errorf("render %s: %w", name, err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// redirectToCustomer answers with a redirect to the detail page of the customer.
func redirectToCustomer(c *gin.Context, id int64) {
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%d/", id))
}

// parseID reads the numeric id parameter of the request URL. An id that is not a positive number
// can never match a row, so the request is answered with NOT FOUND.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithMessage(c, http.StatusNotFound, "invalid id parameter")
		return 0, false
	}
	return id, true
}

// abortWithError answers with the status code belonging to the error. Storage failures are logged
// and reported without details.
func (s *Service) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		abortWithMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		abortWithMessage(c, http.StatusNotFound, err.Error())
	default:
		s.log.Error("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		abortWithMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

func abortWithMessage(c *gin.Context, code int, message string) {
	c.Abort()
	c.String(code, "%s", message)
}
