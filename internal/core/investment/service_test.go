package investment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/core/investment"
	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/pkg/pointer"
)

type fakeRepository struct {
	investments map[string]*investment.Investment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{investments: make(map[string]*investment.Investment)}
}

func (r *fakeRepository) Create(_ context.Context, inv *investment.Investment) error {
	r.investments[inv.ID] = inv
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id, userID string) (*investment.Investment, error) {
	inv, ok := r.investments[id]
	if !ok || inv.UserID != userID {
		return nil, apperr.NotFound("Investment")
	}
	return inv, nil
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string) ([]*investment.Investment, error) {
	var out []*investment.Investment
	for _, inv := range r.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListByType(_ context.Context, userID, investmentType string) ([]*investment.Investment, error) {
	var out []*investment.Investment
	for _, inv := range r.investments {
		if inv.UserID == userID && inv.Type == investmentType {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, inv *investment.Investment) error {
	r.investments[inv.ID] = inv
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id, userID string) error {
	inv, ok := r.investments[id]
	if !ok || inv.UserID != userID {
		return apperr.NotFound("Investment")
	}
	delete(r.investments, id)
	return nil
}

func newTestService() *investment.Service {
	return investment.NewService(newFakeRepository(), slog.Default())
}

func position(t *testing.T, service *investment.Service, name, invType string, quantity, purchasePrice, currentValue float64) *investment.Investment {
	t.Helper()

	input := investment.CreateInput{
		Name:         name,
		Type:         invType,
		CurrentValue: currentValue,
		PurchaseDate: time.Now().UTC().AddDate(-1, 0, 0),
	}
	if quantity > 0 {
		input.Quantity = pointer.To(quantity)
	}
	if purchasePrice > 0 {
		input.PurchasePrice = pointer.To(purchasePrice)
	}

	inv, err := service.Create(context.Background(), "user-1", input)
	require.NoError(t, err)
	return inv
}

func TestInvestment_Invested(t *testing.T) {
	// With quantity and purchase price, cost basis is price * quantity
	withBasis := investment.Investment{
		Quantity:      pointer.To(10.0),
		PurchasePrice: pointer.To(15.0),
		CurrentValue:  200,
	}
	assert.InDelta(t, 150, withBasis.Invested(), 0.001)

	// Without a cost basis the current value stands in for it
	withoutBasis := investment.Investment{CurrentValue: 200}
	assert.InDelta(t, 200, withoutBasis.Invested(), 0.001)
}

func TestService_PortfolioSummary(t *testing.T) {
	service := newTestService()

	// 10 shares bought at 100 now worth 1500 total: +50%
	position(t, service, "ACME", investment.TypeStock, 10, 100, 1500)
	// bought at 500 now worth 400: -20%
	position(t, service, "Coin", investment.TypeCrypto, 1, 500, 400)

	summary, err := service.PortfolioSummary(context.Background(), "user-1")
	require.NoError(t, err)

	// Totals across the portfolio
	assert.InDelta(t, 1900, summary.TotalValue, 0.001)
	assert.InDelta(t, 1500, summary.TotalInvested, 0.001)
	assert.InDelta(t, 400, summary.TotalGainLoss, 0.001)
	assert.InDelta(t, 26.666, summary.GainLossPercentage, 0.01)

	// Per-type breakdown
	stocks := summary.ByType[investment.TypeStock]
	assert.Equal(t, 1, stocks.Count)
	assert.InDelta(t, 1500, stocks.TotalValue, 0.001)
	assert.InDelta(t, 1000, stocks.TotalInvested, 0.001)

	// Performers ranked by relative gain
	require.Len(t, summary.TopPerformers, 2)
	assert.Equal(t, "ACME", summary.TopPerformers[0].Name)
	assert.InDelta(t, 50, summary.TopPerformers[0].Performance, 0.001)
	assert.InDelta(t, -20, summary.TopPerformers[1].Performance, 0.001)
}

func TestService_PortfolioSummary_TopPerformerLimit(t *testing.T) {
	service := newTestService()

	for i := 0; i < 8; i++ {
		// Increasing performance per position
		position(t, service, "P", investment.TypeFund, 1, 100, float64(100+i*10))
	}

	summary, err := service.PortfolioSummary(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, summary.TopPerformers, 5)
	assert.InDelta(t, 70, summary.TopPerformers[0].Performance, 0.001)
}

func TestService_PortfolioSummary_Empty(t *testing.T) {
	service := newTestService()

	summary, err := service.PortfolioSummary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalValue)
	assert.Zero(t, summary.GainLossPercentage)
	assert.Empty(t, summary.TopPerformers)
}

func TestService_UpdateCurrentValue(t *testing.T) {
	service := newTestService()

	inv := position(t, service, "ACME", investment.TypeStock, 10, 100, 1000)

	updated, err := service.UpdateCurrentValue(context.Background(), inv.ID, "user-1", 1250)
	require.NoError(t, err)
	assert.InDelta(t, 1250, updated.CurrentValue, 0.001)

	// Other users cannot mark positions to market
	_, err = service.UpdateCurrentValue(context.Background(), inv.ID, "intruder", 1)
	assert.Error(t, err)
}
