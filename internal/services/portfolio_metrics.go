package services

import (
	"github.com/propdash/portfolio-service/internal/models"
)

// PortfolioMetrics summarizes the Active subset of a property collection.
// When no property is Active the averages are 0 and HasData is false.
type PortfolioMetrics struct {
	TotalValue       float64 `json:"totalValue"`
	TotalProperties  int     `json:"totalProperties"`
	AverageOccupancy float64 `json:"averageOccupancy"`
	TotalRevenue     float64 `json:"totalRevenue"`
	AverageROI       float64 `json:"averageROI"`
	TotalSize        float64 `json:"totalSize"`
	HasData          bool    `json:"hasData"`
}

type TypeBreakdown struct {
	Type  models.PropertyType `json:"type"`
	Value float64             `json:"value"`
	Count int                 `json:"count"`
}

type RegionBreakdown struct {
	Region     string  `json:"region"`
	Value      float64 `json:"value"`
	Properties int     `json:"properties"`
}

type TransactionSummary struct {
	Acquisitions     int     `json:"acquisitions"`
	AcquisitionValue float64 `json:"acquisitionValue"`
	Disposals        int     `json:"disposals"`
	DisposalValue    float64 `json:"disposalValue"`
	NetProfitLoss    float64 `json:"netProfitLoss"`
}

type TenantSummary struct {
	TotalTenants       int                         `json:"totalTenants"`
	ByStatus           map[models.TenantStatus]int `json:"byStatus"`
	TotalArea          float64                     `json:"totalArea"`
	TotalMonthlyRental float64                     `json:"totalMonthlyRental"`
}

func activeOnly(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if p.Status == models.PropertyStatusActive {
			out = append(out, p)
		}
	}
	return out
}

func ComputePortfolioMetrics(props []models.Property) PortfolioMetrics {
	active := activeOnly(props)

	var m PortfolioMetrics
	var occupancy, roi float64
	for _, p := range active {
		m.TotalValue += p.Metrics.Value
		m.TotalRevenue += p.Metrics.AnnualRevenue
		m.TotalSize += p.Metrics.Size
		occupancy += p.Metrics.OccupancyRate
		roi += p.Metrics.ROI
	}
	m.TotalProperties = len(active)
	if len(active) > 0 {
		m.AverageOccupancy = occupancy / float64(len(active))
		m.AverageROI = roi / float64(len(active))
		m.HasData = true
	}
	return m
}

// ComputeBreakdownByType groups Active property values by type in
// first-seen order.
func ComputeBreakdownByType(props []models.Property) []TypeBreakdown {
	out := []TypeBreakdown{}
	index := map[models.PropertyType]int{}
	for _, p := range activeOnly(props) {
		i, ok := index[p.Type]
		if !ok {
			i = len(out)
			index[p.Type] = i
			out = append(out, TypeBreakdown{Type: p.Type})
		}
		out[i].Value += p.Metrics.Value
		out[i].Count++
	}
	return out
}

// ComputeBreakdownByRegion groups Active property values by region in
// first-seen order.
func ComputeBreakdownByRegion(props []models.Property) []RegionBreakdown {
	out := []RegionBreakdown{}
	index := map[string]int{}
	for _, p := range activeOnly(props) {
		i, ok := index[p.Location.Region]
		if !ok {
			i = len(out)
			index[p.Location.Region] = i
			out = append(out, RegionBreakdown{Region: p.Location.Region})
		}
		out[i].Value += p.Metrics.Value
		out[i].Properties++
	}
	return out
}

func ComputeTransactionSummary(txs []models.Transaction) TransactionSummary {
	var s TransactionSummary
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionAcquisition:
			s.Acquisitions++
			s.AcquisitionValue += tx.Value
		case models.TransactionDisposal:
			s.Disposals++
			s.DisposalValue += tx.Value
		}
		if tx.ProfitLoss != nil {
			s.NetProfitLoss += *tx.ProfitLoss
		}
	}
	return s
}

func ComputeTenantSummary(tenants []models.Tenant) TenantSummary {
	s := TenantSummary{
		TotalTenants: len(tenants),
		ByStatus: map[models.TenantStatus]int{
			models.TenantStatusActive:       0,
			models.TenantStatusExpiringSoon: 0,
			models.TenantStatusExpired:      0,
		},
	}
	for _, t := range tenants {
		s.ByStatus[t.Status]++
		s.TotalArea += t.TotalArea
		s.TotalMonthlyRental += t.TotalMonthlyRental
	}
	return s
}
