// Package investment tracks a user's holdings and computes portfolio
// performance from purchase cost versus current value.
package investment

import "time"

const (
	TypeStock      = "STOCK"
	TypeCrypto     = "CRYPTO"
	TypeFund       = "FUND"
	TypeRealEstate = "REAL_ESTATE"
	TypeOther      = "OTHER"
)

var Types = []string{TypeStock, TypeCrypto, TypeFund, TypeRealEstate, TypeOther}

type Investment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Quantity      *float64  `json:"quantity,omitempty"`
	PurchasePrice *float64  `json:"purchasePrice,omitempty"`
	CurrentValue  float64   `json:"currentValue"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Invested returns the capital originally put into the holding. When the
// purchase terms are unknown the current value stands in, so the position
// reports zero gain rather than a fabricated one.
func (investment *Investment) Invested() float64 {
	if investment.PurchasePrice != nil && investment.Quantity != nil {
		return *investment.PurchasePrice * *investment.Quantity
	}
	return investment.CurrentValue
}

type PortfolioSummary struct {
	TotalValue         float64                 `json:"totalValue"`
	TotalInvested      float64                 `json:"totalInvested"`
	TotalGainLoss      float64                 `json:"totalGainLoss"`
	GainLossPercentage float64                 `json:"gainLossPercentage"`
	ByType             map[string]TypeBreakdown `json:"byType"`
	TopPerformers      []Performer             `json:"topPerformers"`
}

type TypeBreakdown struct {
	Count         int     `json:"count"`
	TotalValue    float64 `json:"totalValue"`
	TotalInvested float64 `json:"totalInvested"`
}

// Performer pairs a holding with its absolute and relative gain.
type Performer struct {
	*Investment
	GainLoss    float64 `json:"gainLoss"`
	Performance float64 `json:"performance"`
}
