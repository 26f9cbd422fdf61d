package services

import (
	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
)

type Comparison struct {
	Properties []PropertyView `json:"properties"`
	Notice     string         `json:"notice,omitempty"`
}

// CompareProperties resolves up to constants.MaxComparisonSelection ids in
// the given order, skipping unknown ones. Roles without financial access get
// the refusal notice and views without money figures.
func CompareProperties(s *store.Store, ids []string, role models.Role) Comparison {
	out := Comparison{Properties: []PropertyView{}}
	seen := map[string]struct{}{}
	for _, id := range ids {
		if len(out.Properties) == constants.MaxComparisonSelection {
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p, ok := s.PropertyByID(id)
		if !ok {
			continue
		}
		out.Properties = append(out.Properties, NewPropertyView(*p, role))
	}
	out.Notice = FinancialNotice(role)
	return out
}
