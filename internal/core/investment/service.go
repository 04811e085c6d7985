package investment

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/rotina-app/rotina/pkg/uuid"
)

const topPerformerLimit = 5

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

type CreateInput struct {
	Name          string
	Type          string
	Quantity      *float64
	PurchasePrice *float64
	CurrentValue  float64
	PurchaseDate  time.Time
	Notes         *string
}

func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Investment, error) {
	investment := &Investment{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          input.Name,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		CurrentValue:  input.CurrentValue,
		PurchaseDate:  input.PurchaseDate,
		Notes:         input.Notes,
	}

	if err := service.repo.Create(context, investment); err != nil {
		return nil, err
	}

	return investment, nil
}

func (service *Service) List(context context.Context, userID string) ([]*Investment, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) Get(context context.Context, id, userID string) (*Investment, error) {
	return service.repo.FindByID(context, id, userID)
}

func (service *Service) ListByType(context context.Context, userID, investmentType string) ([]*Investment, error) {
	return service.repo.ListByType(context, userID, investmentType)
}

// PortfolioSummary aggregates the whole portfolio: totals, a per-type
// breakdown and the best performing positions by relative gain.
func (service *Service) PortfolioSummary(context context.Context, userID string) (*PortfolioSummary, error) {
	investments, err := service.repo.ListByUser(context, userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		ByType:        make(map[string]TypeBreakdown),
		TopPerformers: make([]Performer, 0, len(investments)),
	}

	for _, investment := range investments {
		invested := investment.Invested()

		summary.TotalValue += investment.CurrentValue
		summary.TotalInvested += invested

		breakdown := summary.ByType[investment.Type]
		breakdown.Count++
		breakdown.TotalValue += investment.CurrentValue
		breakdown.TotalInvested += invested
		summary.ByType[investment.Type] = breakdown

		performer := Performer{
			Investment: investment,
			GainLoss:   investment.CurrentValue - invested,
		}
		if invested > 0 {
			performer.Performance = performer.GainLoss / invested * 100
		}
		summary.TopPerformers = append(summary.TopPerformers, performer)
	}

	summary.TotalGainLoss = summary.TotalValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.GainLossPercentage = summary.TotalGainLoss / summary.TotalInvested * 100
	}

	sort.Slice(summary.TopPerformers, func(i, j int) bool {
		return summary.TopPerformers[i].Performance > summary.TopPerformers[j].Performance
	})
	if len(summary.TopPerformers) > topPerformerLimit {
		summary.TopPerformers = summary.TopPerformers[:topPerformerLimit]
	}

	return summary, nil
}

type UpdateInput struct {
	Name          *string
	Type          *string
	Quantity      *float64
	PurchasePrice *float64
	CurrentValue  *float64
	PurchaseDate  *time.Time
	Notes         *string
}

func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Investment, error) {
	investment, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		investment.Name = *input.Name
	}
	if input.Type != nil {
		investment.Type = *input.Type
	}
	if input.Quantity != nil {
		investment.Quantity = input.Quantity
	}
	if input.PurchasePrice != nil {
		investment.PurchasePrice = input.PurchasePrice
	}
	if input.CurrentValue != nil {
		investment.CurrentValue = *input.CurrentValue
	}
	if input.PurchaseDate != nil {
		investment.PurchaseDate = *input.PurchaseDate
	}
	if input.Notes != nil {
		investment.Notes = input.Notes
	}

	if err := service.repo.Update(context, investment); err != nil {
		return nil, err
	}

	return investment, nil
}

// UpdateCurrentValue is the fast path for marking positions to market.
func (service *Service) UpdateCurrentValue(context context.Context, id, userID string, currentValue float64) (*Investment, error) {
	investment, err := service.repo.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	investment.CurrentValue = currentValue

	if err := service.repo.Update(context, investment); err != nil {
		return nil, err
	}

	return investment, nil
}

func (service *Service) Delete(context context.Context, id, userID string) error {
	return service.repo.Delete(context, id, userID)
}
