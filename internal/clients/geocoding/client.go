package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"golang.org/x/time/rate"
)

const apiURL = "https://maps.googleapis.com/maps/api/geocode/json"

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Google Geocoding API.
type Client struct {
	apiKey      string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey, httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Geocode returns the best match for the address, or nil when the provider knows none.
func (c *Client) Geocode(ctx context.Context, address string) (*models.GeoLocation, error) {

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	body, err := c.sendRequest(ctx, apiURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response geocodeResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	switch response.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, fmt.Errorf("geocoding failed with status %v: %v", response.Status, response.ErrorMessage)
	}

	if len(response.Results) == 0 {
		return nil, nil
	}

	result := response.Results[0]
	return &models.GeoLocation{
		Lat:              result.Geometry.Location.Lat,
		Lng:              result.Geometry.Location.Lng,
		FormattedAddress: result.FormattedAddress,
	}, nil
}

func (c *Client) sendRequest(ctx context.Context, url string) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}
	return body, nil
}
