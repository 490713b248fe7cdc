package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
)

type DraftOrderRepository struct {
	mu    sync.RWMutex
	order []draft.Pick
}

func NewDraftOrderRepository() *DraftOrderRepository {
	return &DraftOrderRepository{}
}

func (r *DraftOrderRepository) GetOrder(_ context.Context) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Pick, len(r.order))
	copy(out, r.order)
	return out, nil
}

func (r *DraftOrderRepository) SetOrder(_ context.Context, order []draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = make([]draft.Pick, len(order))
	copy(r.order, order)
	return nil
}
