package draft

import "context"

// OrderRepository persists the singleton remaining-order list for the
// current draft. Set replaces the whole list; consumption is modeled as
// setting a shorter remainder.
type OrderRepository interface {
	GetOrder(ctx context.Context) ([]Pick, error)
	SetOrder(ctx context.Context, order []Pick) error
}
