package investment

import "context"

// Repository defines the persistence contract for investments, always scoped
// to the owning user.
type Repository interface {
	Create(context context.Context, investment *Investment) error
	FindByID(context context.Context, id, userID string) (*Investment, error)
	ListByUser(context context.Context, userID string) ([]*Investment, error)
	ListByType(context context.Context, userID, investmentType string) ([]*Investment, error)
	Update(context context.Context, investment *Investment) error
	Delete(context context.Context, id, userID string) error
}
