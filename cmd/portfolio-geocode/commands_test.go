package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

const inputRecords = `[
  {"id": "1", "name": "Sandton Office", "location": {"address": "15 Alice Lane, Sandton", "region": "Gauteng"}},
  {"id": "2", "name": "Nowhere Depot", "location": {"address": "Unknown Rd", "region": "Limpopo"}}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func positionstackStub(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Query().Get("query"), "Sandton") {
			_, _ = w.Write([]byte(`{"data":[{"latitude":-26.108,"longitude":28.049}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnrichCommandWritesJSON(t *testing.T) {
	srv := positionstackStub(t)
	in := writeFile(t, "records.json", inputRecords)
	out := filepath.Join(t.TempDir(), "out.json")

	err := newRootCommand().Run(context.Background(), []string{
		"portfolio-geocode", "enrich",
		"--input", in,
		"--provider", "positionstack",
		"--api-key", "key",
		"--base-url", srv.URL,
		"--delay", "0s",
		"--output", out,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var props []models.Property
	require.NoError(t, json.Unmarshal(raw, &props))
	require.Len(t, props, 2)
	require.True(t, props[0].Location.HasCoordinates())
	assert.Equal(t, -26.108, *props[0].Location.Lat)
	assert.Equal(t, "Africa/Johannesburg", props[0].Location.TimeZone)
	assert.False(t, props[1].Location.HasCoordinates())
}

func TestEnrichCommandWritesCSV(t *testing.T) {
	srv := positionstackStub(t)
	in := writeFile(t, "records.json", inputRecords)
	out := filepath.Join(t.TempDir(), "out.csv")

	err := newRootCommand().Run(context.Background(), []string{
		"portfolio-geocode", "enrich",
		"--input", in, "--provider", "positionstack", "--api-key", "key",
		"--base-url", srv.URL, "--delay", "0s", "--format", "csv", "--output", out,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(string(raw), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"ID","Name","Address","Region","Latitude","Longitude"`, lines[0])
	assert.Equal(t, `"2","Nowhere Depot","Unknown Rd","Limpopo","N/A","N/A"`, lines[2])
}

func TestEnrichCommandWritesEveryRowWhenInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Query().Get("query"), "Sandton") {
			_, _ = w.Write([]byte(`{"data":[{"latitude":-26.108,"longitude":28.049}]}`))
			return
		}
		// the operator hits Ctrl-C while the second lookup is in flight
		cancel()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	in := writeFile(t, "records.json", `[
  {"id": "1", "name": "Sandton Office", "location": {"address": "15 Alice Lane, Sandton", "region": "Gauteng"}},
  {"id": "2", "name": "Nowhere Depot", "location": {"address": "Unknown Rd", "region": "Limpopo"}},
  {"id": "3", "name": "Umhlanga Ridge", "location": {"address": "1 Ridge Rd", "region": "KwaZulu-Natal", "lat": -29.72, "lng": 31.08}}
]`)
	out := filepath.Join(t.TempDir(), "out.json")

	err := newRootCommand().Run(ctx, []string{
		"portfolio-geocode", "enrich",
		"--input", in, "--provider", "positionstack", "--api-key", "key",
		"--base-url", srv.URL, "--delay", "0s", "--output", out,
	})
	require.ErrorIs(t, err, context.Canceled)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var props []models.Property
	require.NoError(t, json.Unmarshal(raw, &props))
	require.Len(t, props, 3)
	assert.True(t, props[0].Location.HasCoordinates())
	assert.False(t, props[1].Location.HasCoordinates())
	assert.Equal(t, "3", props[2].ID)
	assert.False(t, props[2].Location.HasCoordinates(), "unprocessed rows carry no stale coordinates")
}

func TestEnrichCommandRejectsBadInput(t *testing.T) {
	in := writeFile(t, "records.json", `[{"id": "1"}]`)
	err := newRootCommand().Run(context.Background(), []string{
		"portfolio-geocode", "enrich", "--input", in, "--provider", "mapbox", "--api-key", "key",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)

	err = newRootCommand().Run(context.Background(), []string{
		"portfolio-geocode", "enrich", "--input", in, "--provider", "bing", "--api-key", "key",
	})
	assert.ErrorIs(t, err, utils.ErrUnknownProvider)
}

func TestEnrichCommandRequiresKey(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", "")
	in := writeFile(t, "records.json", inputRecords)
	err := newRootCommand().Run(context.Background(), []string{
		"portfolio-geocode", "enrich", "--input", in, "--provider", "google",
	})
	assert.ErrorIs(t, err, utils.ErrMissingAPIKey)
}

func TestTransformCommand(t *testing.T) {
	feed := writeFile(t, "feed.json", `[
	  {"id": "F1", "name": "Pinmill Farm", "type": "Office", "status": "Active",
	   "location": {"lat": -26.10, "lng": 28.07, "address": "164 Katherine St", "node": null, "region": "Gauteng"},
	   "leasing_consultant": {"name": "Dylan Newton"}}
	]`)
	out := filepath.Join(t.TempDir(), "props.json")
	require.NoError(t, newRootCommand().Run(context.Background(), []string{
		"portfolio-geocode", "transform", "--input", feed, "--seed", "42", "--output", out,
	}))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var props []models.Property
	require.NoError(t, json.Unmarshal(raw, &props))
	require.Len(t, props, 1)
	assert.Equal(t, "F1", props[0].ID)
	assert.Equal(t, models.NodeNotApplicable, props[0].Location.Node)
	assert.Greater(t, props[0].Metrics.Value, 0.0)
}

func TestParseFeedValidates(t *testing.T) {
	_, err := parseFeed([]byte(`{"id":"F1"}`))
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)

	_, err = parseFeed([]byte(`[{"id":"F1"}]`))
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)

	items, err := parseFeed([]byte(`[{"id":"F1","name":"One"}]`))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"json", "CSV", "xlsx"} {
		_, err := parseFormat(ok)
		assert.NoError(t, err, ok)
	}
	_, err := parseFormat("yaml")
	assert.Error(t, err)
}
