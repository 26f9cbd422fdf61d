package app

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/propdash/portfolio-service/internal/models"
)

//go:embed seed/portfolio.json
var seedPortfolio []byte

// Dataset is the full set of records the store is built from.
type Dataset struct {
	Properties    []models.Property     `json:"properties" validate:"dive"`
	Tenants       []models.Tenant       `json:"tenants"`
	Notifications []models.Notification `json:"notifications" validate:"dive"`
	Transactions  []models.Transaction  `json:"transactions"`
}

// LoadSeedDataset decodes the embedded demo portfolio.
func LoadSeedDataset() (Dataset, error) {
	return decodeDataset(seedPortfolio)
}

func decodeDataset(raw []byte) (Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	if err := validator.New().Struct(ds); err != nil {
		return Dataset{}, fmt.Errorf("invalid dataset: %w", err)
	}
	return ds, nil
}
