package models

type TransactionType string

const (
	TransactionAcquisition TransactionType = "Acquisition"
	TransactionDisposal    TransactionType = "Disposal"
)

// Transaction is a read-only historical acquisition or disposal.
type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	PropertyName string          `json:"propertyName"`
	Date         Date            `json:"date"`
	Value        float64         `json:"value"`
	ProfitLoss   *float64        `json:"profitLoss,omitempty"`
}
