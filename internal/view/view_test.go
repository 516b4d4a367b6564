package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/lunchly/internal/model"
)

func customer(id int64, first, last string) model.Customer {
	c := model.NewCustomer(first, last, "555-1212", "likes <b>bold</b> wine")
	c.Key = model.Persisted(id)
	return c
}

func render(t *testing.T, name string, data any) string {
	engine, err := NewEngine()
	require.NoError(t, err, "templates should parse without error")
	var buf bytes.Buffer
	require.NoError(t, engine.Render(&buf, name, data))
	return buf.String()
}

func TestCustomerList(t *testing.T) {
	html := render(t, CustomerList, map[string]any{
		"customers": []model.Customer{customer(1, "Ada", "Lovelace"), customer(2, "Sam", "Smith")},
		"search":    "a",
	})
	assert.Contains(t, html, `<a href="/1/">Ada Lovelace</a>`)
	assert.Contains(t, html, `<a href="/2/">Sam Smith</a>`)
	assert.Contains(t, html, `value="a"`)
}

func TestCustomerListEmpty(t *testing.T) {
	html := render(t, CustomerList, map[string]any{"customers": []model.Customer{}})
	assert.Contains(t, html, "No customers found.")
	assert.NotContains(t, html, "no value")
}

func TestCustomerNewForm(t *testing.T) {
	html := render(t, CustomerNewForm, map[string]any{})
	assert.Contains(t, html, `action="/add/"`)
	assert.Contains(t, html, `name="firstName"`)
}

// TestCustomerDetail checks that notes are escaped and reservations link to their edit form.
func TestCustomerDetail(t *testing.T) {
	r := model.LoadReservation(7, 1, time.Date(2024, time.January, 1, 19, 0, 0, 0, time.Local), 4, "window seat")
	html := render(t, CustomerDetail, map[string]any{
		"customer":     customer(1, "Ada", "Lovelace"),
		"reservations": []model.Reservation{r},
	})
	assert.Contains(t, html, "<h1>Ada Lovelace</h1>")
	assert.Contains(t, html, "likes &lt;b&gt;bold&lt;/b&gt; wine")
	assert.Contains(t, html, `<a href="/reservations/7">January 1st 2024, 7:00 pm</a>`)
	assert.Contains(t, html, `action="/1/add-reservation/"`)
}

func TestCustomerEditForm(t *testing.T) {
	html := render(t, CustomerEditForm, map[string]any{"customer": customer(3, "Ada", "Lovelace")})
	assert.Contains(t, html, `action="/3/edit/"`)
	assert.Contains(t, html, `value="Ada"`)
	assert.Contains(t, html, `value="Lovelace"`)
}

func TestCustomerTopTen(t *testing.T) {
	html := render(t, CustomerTopTen, map[string]any{
		"customers": []model.RankedCustomer{{Customer: customer(4, "Sam", "Smith"), ReservationCount: 12}},
	})
	assert.Contains(t, html, `<a href="/4/">Sam Smith</a> (12 reservations)`)
}

func TestReservationEditForm(t *testing.T) {
	r := model.LoadReservation(7, 1, time.Date(2024, time.January, 1, 19, 0, 0, 0, time.Local), 4, "window seat")
	html := render(t, ReservationEditForm, map[string]any{"reservation": r})
	assert.Contains(t, html, `action="/reservations/7"`)
	assert.Contains(t, html, `value="2024-01-01T19:00"`)
	assert.Contains(t, html, `<a href="/1/">Back to customer</a>`)
}

func TestRenderUnknownPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	assert.Error(t, engine.Render(&bytes.Buffer{}, "missing.html", nil))
}
