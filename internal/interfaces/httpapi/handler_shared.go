package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	"github.com/riskibarqy/franchise-gm/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type leagueStateDTO struct {
	Season     int       `json:"season"`
	Phase      string    `json:"phase"`
	UserTID    int       `json:"user_tid"`
	LastChange time.Time `json:"last_change"`
}

type draftPickDTO struct {
	Round       int    `json:"round" validate:"gte=1"`
	Pick        int    `json:"pick" validate:"gte=1"`
	TID         int    `json:"tid" validate:"gte=0"`
	OriginalTID int    `json:"original_tid" validate:"gte=0"`
	Abbrev      string `json:"abbrev,omitempty"`
	Year        int    `json:"year,omitempty"`
}

type setOrderRequest struct {
	Picks []draftPickDTO `json:"picks" validate:"required,dive"`
}

type selectPlayerRequest struct {
	Round int   `json:"round" validate:"gte=1"`
	Pick  int   `json:"pick" validate:"gte=1"`
	TID   int   `json:"tid" validate:"gte=0"`
	PID   int64 `json:"pid" validate:"gte=1"`
}

type generateClassResponse struct {
	Generated int `json:"generated"`
}

type prospectDTO struct {
	PID    int64    `json:"pid"`
	Name   string   `json:"name"`
	Born   int      `json:"born"`
	Ovr    int      `json:"ovr"`
	Pot    int      `json:"pot"`
	Skills []string `json:"skills,omitempty"`
}

type draftedPlayerDTO struct {
	PID            int64  `json:"pid"`
	Name           string `json:"name"`
	TID            int    `json:"tid"`
	Round          int    `json:"round"`
	Pick           int    `json:"pick"`
	Year           int    `json:"year"`
	Abbrev         string `json:"abbrev"`
	ContractAmount int64  `json:"contract_amount"`
	ContractExp    int    `json:"contract_exp"`
}

type lotteryRunResponse struct {
	Results []draft.LotteryResult `json:"results"`
	Order   []draftPickDTO        `json:"order"`
}

type lotteryProbabilitiesResponse struct {
	Teams []draft.LotteryResult `json:"teams"`
	Probs [][]float64           `json:"probs"`
}

type lotterySimulationResponse struct {
	Trials      int         `json:"trials"`
	Frequencies [][]float64 `json:"frequencies"`
}

type autoplayRunDTO struct {
	RunID   uint64  `json:"run_id"`
	Status  string  `json:"status"`
	Drafted []int64 `json:"drafted,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func pickToDTO(p draft.Pick) draftPickDTO {
	return draftPickDTO{
		Round:       p.Round,
		Pick:        p.Pick,
		TID:         p.TID,
		OriginalTID: p.OriginalTID,
		Abbrev:      p.Abbrev,
		Year:        p.Year,
	}
}

func picksToDTO(picks []draft.Pick) []draftPickDTO {
	out := make([]draftPickDTO, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickToDTO(p))
	}
	return out
}

func pickFromDTO(d draftPickDTO) draft.Pick {
	return draft.Pick{
		Round:       d.Round,
		Pick:        d.Pick,
		TID:         d.TID,
		OriginalTID: d.OriginalTID,
		Abbrev:      d.Abbrev,
		Year:        d.Year,
	}
}

// prospectToDTO exposes the scouted overall, not the true one; scouting
// error is part of the game.
func prospectToDTO(p player.Player) prospectDTO {
	return prospectDTO{
		PID:    p.PID,
		Name:   p.Name,
		Born:   p.Born,
		Ovr:    p.FuzzedOvr(),
		Pot:    p.Ratings.Pot,
		Skills: p.Ratings.Skills,
	}
}

func draftedPlayerToDTO(p player.Player) draftedPlayerDTO {
	dto := draftedPlayerDTO{
		PID:            p.PID,
		Name:           p.Name,
		TID:            p.TID,
		ContractAmount: p.Contract.Amount,
		ContractExp:    p.Contract.ExpYear,
	}
	if p.Draft != nil {
		dto.Round = p.Draft.Round
		dto.Pick = p.Draft.Pick
		dto.Year = p.Draft.Year
		dto.Abbrev = p.Draft.Abbrev
	}
	return dto
}
