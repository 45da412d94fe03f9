// Package geocode resolves coordinates to addresses through the Tencent Map WebService.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// DefaultEndpoint is the Tencent reverse geocoder.
const DefaultEndpoint = "https://apis.map.qq.com/ws/geocoder/v1/"

// Address is a resolved location.
type Address struct {
	Address          string `json:"address"`
	FormattedAddress string `json:"formattedAddress"`
	Province         string `json:"province"`
	City             string `json:"city"`
	District         string `json:"district"`
	Street           string `json:"street"`
	StreetNumber     string `json:"streetNumber"`
	Adcode           string `json:"adcode"`
}

type response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  struct {
		Address            string `json:"address"`
		FormattedAddresses struct {
			Recommend string `json:"recommend"`
		} `json:"formatted_addresses"`
		AdInfo struct {
			Province string `json:"province"`
			City     string `json:"city"`
			District string `json:"district"`
			Adcode   string `json:"adcode"`
		} `json:"ad_info"`
		AddressComponent struct {
			Street       string `json:"street"`
			StreetNumber string `json:"street_number"`
		} `json:"address_component"`
	} `json:"result"`
}

// Client talks to the provider directly. It never carries the campus token.
type Client struct {
	endpoint string
	key      string
	hc       *http.Client
	log      logger.Logger
	metrics  *metrics.Manager
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the provider URL.
func WithEndpoint(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.endpoint = u
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a geocoder using key.
func New(key string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		key:      key,
		hc:       &http.Client{Timeout: 10 * time.Second},
		metrics:  metrics.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("geocode")
	}
	return c
}

// Reverse resolves lat,lng to an address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (Address, error) {
	if lat == 0 || lng == 0 {
		return Address{}, ErrMissingCoordinates
	}
	if c.key == "" {
		return Address{}, ErrMissingKey
	}

	q := url.Values{}
	q.Set("location", formatCoord(lat)+","+formatCoord(lng))
	q.Set("key", c.key)
	q.Set("get_poi", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Address{}, fmt.Errorf("build geocode request: %w", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		c.metrics.RecordGeocode(metrics.OutcomeNetwork)
		c.log.Warn(ctx, "geocode request failed", logger.Error(err))
		return Address{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordGeocode(metrics.OutcomeTransport)
		return Address{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordGeocode(metrics.OutcomeNetwork)
		return Address{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	var body response
	if err := json.Unmarshal(raw, &body); err != nil {
		c.metrics.RecordGeocode(metrics.OutcomeDecode)
		return Address{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if body.Status != 0 {
		c.metrics.RecordGeocode(metrics.OutcomeBusiness)
		c.log.Warn(ctx, "geocode rejected", logger.Int("status", body.Status), logger.String("message", body.Message))
		return Address{}, &APIError{Status: body.Status, Message: body.Message}
	}

	c.metrics.RecordGeocode(metrics.OutcomeOK)
	r := body.Result
	formatted := r.FormattedAddresses.Recommend
	if formatted == "" {
		formatted = r.Address
	}
	return Address{
		Address:          r.Address,
		FormattedAddress: formatted,
		Province:         r.AdInfo.Province,
		City:             r.AdInfo.City,
		District:         r.AdInfo.District,
		Street:           r.AddressComponent.Street,
		StreetNumber:     r.AddressComponent.StreetNumber,
		Adcode:           r.AdInfo.Adcode,
	}, nil
}

// Lookup returns only the display address for lat,lng.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (string, error) {
	a, err := c.Reverse(ctx, lat, lng)
	if err != nil {
		return "", err
	}
	if a.FormattedAddress != "" {
		return a.FormattedAddress, nil
	}
	return a.Address, nil
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
