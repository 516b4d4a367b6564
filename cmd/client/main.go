package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitlab.com/dirk.krummacker/lunchly/pkg/forms"
)

// client does not follow redirects so that the id of a new customer can be read from the
// Location header.
var client = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

var baseURL string

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080
//
// The client fills the service with customers and reservations and prints the average duration of
// each kind of request in microseconds.
func main() {
	urlPtr := flag.String("url", "http://localhost:8080", "base URL of the running service")
	flag.Parse()
	baseURL = strings.TrimSuffix(*urlPtr, "/")

	customer := forms.CustomerForm{
		FirstName: "Marcus",
		LastName:  "Antonius",
		Phone:     "+39 999 777 555",
		Notes:     "prefers a table near the window",
	}
	fmt.Println()
	fmt.Println("  Elements       ADD      EDIT   RESERVE      SHOW")
	fmt.Println("---------------------------------------------------")
	sizes := []int{100, 500, 1000, 5000}
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		ids := make([]int64, 0, loops)
		{
			// add customers
			var duration int64
			for i := 0; i < loops; i++ {
				id, d := sendAddRequest(customer)
				ids = append(ids, id)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// edit customers
			edited := customer
			edited.Notes = "regular guest"
			f := func(id int64) int64 {
				return sendFormRequest(fmt.Sprintf("%s/%d/edit/", baseURL, id), edited.Values())
			}
			callInLoop(ids, f)
		}
		{
			// book reservations
			f := func(id int64) int64 {
				reservation := forms.ReservationForm{
					StartAt:   time.Now().Add(time.Duration(rand.Intn(90*24)) * time.Hour).Format("2006-01-02T15:04"),
					NumGuests: 1 + rand.Intn(8),
				}
				return sendFormRequest(fmt.Sprintf("%s/%d/add-reservation/", baseURL, id), reservation.Values())
			}
			callInLoop(ids, f)
		}
		{
			// show customers
			f := func(id int64) int64 {
				_, d := sendRequest(http.MethodGet, fmt.Sprintf("%s/%d/", baseURL, id), "")
				return d
			}
			callInLoop(ids, f)
		}
		fmt.Println()
	}
}

func callInLoop(ids []int64, f func(id int64) int64) {
	shuffled := append([]int64(nil), ids...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		duration += f(id)
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
}

// sendAddRequest adds a customer and returns the new id, taken from the redirect target.
func sendAddRequest(customer forms.CustomerForm) (int64, int64) {
	res, duration := sendRequest(http.MethodPost, baseURL+"/add/", customer.Values().Encode())
	if res.StatusCode != http.StatusSeeOther {
		panic(fmt.Sprintf("unexpected status %s when adding a customer", res.Status))
	}
	location := strings.Trim(res.Header.Get("Location"), "/")
	id, err := strconv.ParseInt(location, 10, 64)
	if err != nil {
		fmt.Println("could not parse customer id from redirect", err)
		panic(err)
	}
	return id, duration
}

func sendFormRequest(requestURL string, values url.Values) int64 {
	res, duration := sendRequest(http.MethodPost, requestURL, values.Encode())
	if res.StatusCode != http.StatusSeeOther {
		panic(fmt.Sprintf("unexpected status %s for %s", res.Status, requestURL))
	}
	return duration
}

// sendRequest sends a form-encoded body unless body is empty, and returns the drained response
// together with the duration in nanoseconds.
func sendRequest(method string, requestURL string, body string) (*http.Response, int64) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	before := time.Now().UnixNano()
	res, err := client.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	res.Body.Close()
	after := time.Now().UnixNano()
	return res, after - before
}
