package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/geocoding"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/utils"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

func enrichCommand() *cli.Command {
	return &cli.Command{
		Name:  "enrich",
		Usage: "Geocode every record of a JSON or XLSX property file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "property records (.json or .xlsx)"},
			&cli.StringFlag{Name: "provider", Value: string(geocoding.ProviderGoogle), Usage: "google, mapbox or positionstack", Sources: cli.EnvVars("GEOCODE_PROVIDER")},
			&cli.StringFlag{Name: "api-key", Usage: "provider API key", Sources: cli.EnvVars("GEOCODE_API_KEY")},
			&cli.StringFlag{Name: "base-url", Usage: "override the provider endpoint"},
			&cli.StringFlag{Name: "format", Value: formatJSON, Usage: "output format: json, csv or xlsx"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
			&cli.DurationFlag{Name: "delay", Value: constants.GeocodeRequestDelay, Usage: "pause between requests"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			name, err := geocoding.ParseProviderName(c.String("provider"))
			if err != nil {
				return err
			}
			format, err := parseFormat(c.String("format"))
			if err != nil {
				return err
			}
			records, err := readRecords(c.String("input"))
			if err != nil {
				return err
			}

			provider, err := geocoding.NewProvider(name, c.String("api-key"), geocoding.Options{BaseURL: c.String("base-url")})
			if err != nil {
				return err
			}
			runner := geocoding.NewRunner(provider, geocoding.WithDelay(c.Duration("delay")))

			res, runErr := runner.Run(ctx, records, func(p geocoding.Progress) {
				utils.Logger.Infof("[%d/%d] success=%d failed=%d", p.Current, p.Total, p.SuccessCount, p.FailedCount)
			})
			out, skipped := geocoding.PadUnprocessed(res, records)
			if runErr != nil {
				utils.Logger.WithError(runErr).
					WithField("skipped", skipped).
					Warnf("Batch stopped after %d of %d records; the rest are written without coordinates", len(res.Records), len(records))
			}

			if err := writeOutput(c.String("output"), format, out); err != nil {
				return err
			}
			utils.Logger.Infof("Geocoded %d records: %d succeeded, %d failed", len(res.Records), res.SuccessCount, res.FailedCount)
			return runErr
		},
	}
}

func transformCommand() *cli.Command {
	return &cli.Command{
		Name:  "transform",
		Usage: "Convert a property listing feed into portfolio records with synthetic metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "feed JSON array"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "random seed; the same seed gives the same metrics"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			raw, err := os.ReadFile(c.String("input"))
			if err != nil {
				return err
			}
			items, err := parseFeed(raw)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(int64(c.Int("seed"))))
			props := services.TransformFeed(items, rng, time.Now())
			utils.Logger.Infof("Transformed %d feed records", len(props))
			return writeOutput(c.String("output"), formatJSON, props)
		},
	}
}

var feedValidate = validator.New()

func parseFeed(raw []byte) ([]services.FeedProperty, error) {
	var items []services.FeedProperty
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: feed is not a JSON array: %v", utils.ErrInvalidPayload, err)
	}
	for i, item := range items {
		if err := feedValidate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: feed record %d: %v", utils.ErrInvalidPayload, i, err)
		}
	}
	return items, nil
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case formatJSON, formatCSV, formatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

func readRecords(path string) ([]models.Property, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return geocoding.ParseXLSX(bytes.NewReader(raw))
	}
	return geocoding.ParseInput(raw)
}

func writeOutput(path, format string, props []models.Property) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case formatCSV:
		return geocoding.WriteCSV(w, props)
	case formatXLSX:
		return geocoding.WriteXLSX(w, props)
	default:
		return geocoding.WriteJSON(w, props)
	}
}
