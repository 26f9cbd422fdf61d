package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/utils"
)

const wantQuery = "1 Main Rd, Gauteng, South Africa"

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestFullAddress(t *testing.T) {
	assert.Equal(t, wantQuery, FullAddress("1 Main Rd", "Gauteng"))
}

func TestNewProviderRequiresKey(t *testing.T) {
	_, err := NewProvider(ProviderMapbox, "  ", Options{})
	assert.ErrorIs(t, err, utils.ErrMissingAPIKey)

	_, err = NewProvider(ProviderName("bing"), "key", Options{})
	assert.ErrorIs(t, err, utils.ErrUnknownProvider)
}

func TestParseProviderName(t *testing.T) {
	n, err := ParseProviderName(" Google ")
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, n)

	_, err = ParseProviderName("osm")
	assert.ErrorIs(t, err, utils.ErrUnknownProvider)
}

func TestGoogleProvider(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		if r.URL.Query().Get("address") != wantQuery {
			writeJSON(w, http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"status":"OK","results":[{"geometry":{"location":{"lat":-26.2041,"lng":28.0473}}}]}`)
	})

	p, err := NewProvider(ProviderGoogle, "g-key", Options{BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, p.Name())

	res := p.Geocode(context.Background(), "1 Main Rd", "Gauteng")
	require.True(t, res.Success)
	assert.Equal(t, -26.2041, *res.Lat)
	assert.Equal(t, 28.0473, *res.Lng)

	res = p.Geocode(context.Background(), "Nowhere", "Gauteng")
	assert.Equal(t, Result{}, res)
}

func TestGoogleProviderDeniedRequest(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`)
	})
	p, err := NewProvider(ProviderGoogle, "bad", Options{BaseURL: srv.URL})
	require.NoError(t, err)

	assert.False(t, p.Geocode(context.Background(), "1 Main Rd", "Gauteng").Success)
}

func TestMapboxProvider(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocoding/v5/mapbox.places/"+wantQuery+".json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "m-key", q.Get("access_token"))
		assert.Equal(t, "ZA", q.Get("country"))
		assert.Equal(t, "1", q.Get("limit"))
		writeJSON(w, http.StatusOK, `{"features":[{"center":[18.4241,-33.9249]}]}`)
	})

	p, err := NewProvider(ProviderMapbox, "m-key", Options{BaseURL: srv.URL})
	require.NoError(t, err)

	res := p.Geocode(context.Background(), "1 Main Rd", "Gauteng")
	require.True(t, res.Success)
	assert.Equal(t, -33.9249, *res.Lat, "center is [lng, lat]")
	assert.Equal(t, 18.4241, *res.Lng)
}

func TestPositionstackProvider(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forward", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "p-key", q.Get("access_key"))
		assert.Equal(t, wantQuery, q.Get("query"))
		assert.Equal(t, "1", q.Get("limit"))
		writeJSON(w, http.StatusOK, `{"data":[{"latitude":-29.8587,"longitude":31.0218}]}`)
	})

	p, err := NewProvider(ProviderPositionstack, "p-key", Options{BaseURL: srv.URL})
	require.NoError(t, err)

	res := p.Geocode(context.Background(), "1 Main Rd", "Gauteng")
	require.True(t, res.Success)
	assert.Equal(t, -29.8587, *res.Lat)
	assert.Equal(t, 31.0218, *res.Lng)
}

func TestRestProvidersReportFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"server error":   {http.StatusInternalServerError, `{"message":"boom"}`},
		"unauthorized":   {http.StatusUnauthorized, `{"message":"Not Authorized - Invalid Token"}`},
		"empty results":  {http.StatusOK, `{"features":[],"data":[]}`},
		"malformed body": {http.StatusOK, `{"features":`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})
			for _, provider := range []ProviderName{ProviderMapbox, ProviderPositionstack} {
				p, err := NewProvider(provider, "key", Options{BaseURL: srv.URL})
				require.NoError(t, err)
				res := p.Geocode(context.Background(), "1 Main Rd", "Gauteng")
				assert.Equal(t, Result{}, res, "provider %s", provider)
			}
		})
	}
}

func TestRestProviderTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := NewProvider(ProviderMapbox, "key", Options{BaseURL: url})
	require.NoError(t, err)
	assert.False(t, p.Geocode(context.Background(), "1 Main Rd", "Gauteng").Success)
}
