// Package integration handles external service interactions
package integration

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// ClimateFetcher retrieves climate payloads from a remote JSON endpoint
type ClimateFetcher struct {
	sourceURL string
}

// NewClimateFetcher creates a new climate data fetcher
func NewClimateFetcher(url string) *ClimateFetcher {
	if url == "" {
		// Default placeholder endpoint until a real climate API is wired in
		url = "https://jsonplaceholder.typicode.com/todos/1"
	}
	return &ClimateFetcher{sourceURL: url}
}

// FetchClimateData issues a GET request and decodes the response body as
// JSON. Failures are logged here and the caller receives a nil payload;
// nothing downstream treats them as fatal.
func (cf *ClimateFetcher) FetchClimateData() (any, error) {
	log.Printf("Sending HTTP request to climate data endpoint %s", cf.sourceURL)
	res, err := http.Get(cf.sourceURL)
	if err != nil {
		log.Printf("Error fetching climate data: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch climate data: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	// Check for successful response
	if res.StatusCode != 200 {
		log.Printf("Received unexpected status code: %d %s", res.StatusCode, res.Status)
		return nil, fmt.Errorf("%w: unexpected status code: %d %s", ErrNetwork, res.StatusCode, res.Status)
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		log.Printf("Error decoding JSON data: %v", err)
		return nil, fmt.Errorf("%w: malformed climate payload: %v", ErrDecode, err)
	}

	log.Printf("Successfully fetched climate payload from %s", cf.sourceURL)
	return payload, nil
}
