package geocoding

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/utils"
)

type positionstackResponse struct {
	Data []struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"data"`
}

type positionstackProvider struct {
	http   *resty.Client
	apiKey string
}

func newPositionstackProvider(apiKey string, opts Options) *positionstackProvider {
	return &positionstackProvider{
		http:   newRestyClient(opts.baseURL(constants.PositionstackGeocodeBaseURL), opts),
		apiKey: apiKey,
	}
}

func (p *positionstackProvider) Name() ProviderName { return ProviderPositionstack }

func (p *positionstackProvider) Geocode(ctx context.Context, address, region string) Result {
	var body positionstackResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_key": p.apiKey,
			"query":      FullAddress(address, region),
			"limit":      "1",
		}).
		ForceContentType("application/json").
		SetResult(&body).
		Get("/v1/forward")
	if err != nil {
		utils.Logger.WithError(err).WithField("address", address).Warn("[Geocode] Positionstack request failed")
		return failed()
	}
	if !resp.IsSuccess() {
		utils.Logger.WithField("status", resp.StatusCode()).WithField("address", address).Warn("[Geocode] Positionstack returned non-2xx")
		return failed()
	}
	if len(body.Data) == 0 || body.Data[0].Latitude == nil || body.Data[0].Longitude == nil {
		return failed()
	}
	return succeeded(*body.Data[0].Latitude, *body.Data[0].Longitude)
}
