package geocoding

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/utils"
)

type mapboxResponse struct {
	Features []struct {
		// Center is [lng, lat].
		Center []float64 `json:"center"`
	} `json:"features"`
}

type mapboxProvider struct {
	http   *resty.Client
	apiKey string
}

func newRestyClient(baseURL string, opts Options) *resty.Client {
	var c *resty.Client
	if opts.HTTPClient != nil {
		c = resty.NewWithClient(opts.HTTPClient)
	} else {
		c = resty.New()
	}
	return c.
		SetBaseURL(baseURL).
		SetTimeout(opts.timeout()).
		SetHeader("Accept", "application/json")
}

func newMapboxProvider(apiKey string, opts Options) *mapboxProvider {
	return &mapboxProvider{
		http:   newRestyClient(opts.baseURL(constants.MapboxGeocodeBaseURL), opts),
		apiKey: apiKey,
	}
}

func (p *mapboxProvider) Name() ProviderName { return ProviderMapbox }

func (p *mapboxProvider) Geocode(ctx context.Context, address, region string) Result {
	var body mapboxResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetPathParam("query", FullAddress(address, region)).
		SetQueryParams(map[string]string{
			"access_token": p.apiKey,
			"country":      constants.GeocodeCountryCode,
			"limit":        "1",
		}).
		ForceContentType("application/json").
		SetResult(&body).
		Get("/geocoding/v5/mapbox.places/{query}.json")
	if err != nil {
		utils.Logger.WithError(err).WithField("address", address).Warn("[Geocode] Mapbox request failed")
		return failed()
	}
	if !resp.IsSuccess() {
		utils.Logger.WithField("status", resp.StatusCode()).WithField("address", address).Warn("[Geocode] Mapbox returned non-2xx")
		return failed()
	}
	if len(body.Features) == 0 || len(body.Features[0].Center) < 2 {
		return failed()
	}
	center := body.Features[0].Center
	return succeeded(center[1], center[0])
}
