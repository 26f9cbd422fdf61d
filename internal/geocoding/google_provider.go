package geocoding

import (
	"context"
	"net/http"

	"googlemaps.github.io/maps"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/utils"
)

type googleProvider struct {
	client *maps.Client
}

func newGoogleProvider(apiKey string, opts Options) (*googleProvider, error) {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.timeout()}
	}
	client, err := maps.NewClient(
		maps.WithAPIKey(apiKey),
		maps.WithBaseURL(opts.baseURL(constants.GoogleGeocodeBaseURL)),
		maps.WithHTTPClient(hc),
	)
	if err != nil {
		return nil, err
	}
	return &googleProvider{client: client}, nil
}

func (p *googleProvider) Name() ProviderName { return ProviderGoogle }

func (p *googleProvider) Geocode(ctx context.Context, address, region string) Result {
	results, err := p.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: FullAddress(address, region),
	})
	if err != nil {
		utils.Logger.WithError(err).WithField("address", address).Warn("[Geocode] Google request failed")
		return failed()
	}
	// ZERO_RESULTS comes back as an empty slice with a nil error.
	if len(results) == 0 {
		return failed()
	}
	loc := results[0].Geometry.Location
	return succeeded(loc.Lat, loc.Lng)
}
