package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
)

// DraftOrderRepository stores the remaining pick list as one JSONB row: the
// order is always read and rewritten whole, never queried by pick.
type DraftOrderRepository struct {
	db *sqlx.DB
}

func NewDraftOrderRepository(db *sqlx.DB) *DraftOrderRepository {
	return &DraftOrderRepository{db: db}
}

func (r *DraftOrderRepository) GetOrder(ctx context.Context) ([]draft.Pick, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw, `SELECT picks FROM draft_order WHERE id = 1`)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft order: %w", err)
	}

	var order []draft.Pick
	if err := sonic.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("unmarshal draft order: %w", err)
	}
	return order, nil
}

func (r *DraftOrderRepository) SetOrder(ctx context.Context, order []draft.Pick) error {
	if order == nil {
		order = []draft.Pick{}
	}
	raw, err := sonic.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal draft order: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO draft_order (id, picks) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET picks = EXCLUDED.picks`, raw)
	if err != nil {
		return fmt.Errorf("set draft order: %w", err)
	}
	return nil
}
