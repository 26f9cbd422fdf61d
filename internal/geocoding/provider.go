package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/utils"
)

type ProviderName string

const (
	ProviderGoogle        ProviderName = "google"
	ProviderMapbox        ProviderName = "mapbox"
	ProviderPositionstack ProviderName = "positionstack"
)

// Result of one geocoding lookup. Lat and Lng are nil unless Success.
type Result struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Success bool     `json:"success"`
}

func failed() Result {
	return Result{}
}

func succeeded(lat, lng float64) Result {
	return Result{Lat: &lat, Lng: &lng, Success: true}
}

// Provider resolves a free-text address to coordinates. Transport errors,
// non-2xx replies and empty result sets come back as an unsuccessful
// Result, never as an error, so a batch can move on.
type Provider interface {
	Name() ProviderName
	Geocode(ctx context.Context, address, region string) Result
}

// Options tune provider construction. Zero values select the public
// endpoints and a default HTTP client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return constants.GeocodeRequestTimeout
}

func (o Options) baseURL(def string) string {
	if o.BaseURL != "" {
		return strings.TrimRight(o.BaseURL, "/")
	}
	return def
}

func ParseProviderName(s string) (ProviderName, error) {
	switch n := ProviderName(strings.ToLower(strings.TrimSpace(s))); n {
	case ProviderGoogle, ProviderMapbox, ProviderPositionstack:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", utils.ErrUnknownProvider, s)
}

// NewProvider builds the named provider. A missing key is a configuration
// error reported before any request is made.
func NewProvider(name ProviderName, apiKey string, opts Options) (Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w for provider %s", utils.ErrMissingAPIKey, name)
	}
	switch name {
	case ProviderGoogle:
		return newGoogleProvider(apiKey, opts)
	case ProviderMapbox:
		return newMapboxProvider(apiKey, opts), nil
	case ProviderPositionstack:
		return newPositionstackProvider(apiKey, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", utils.ErrUnknownProvider, name)
	}
}

// FullAddress is the query string sent to every provider.
func FullAddress(address, region string) string {
	return fmt.Sprintf("%s, %s, %s", address, region, constants.GeocodeCountrySuffix)
}
