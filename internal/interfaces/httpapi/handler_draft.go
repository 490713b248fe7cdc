package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
	"github.com/riskibarqy/franchise-gm/internal/usecase"
)

func (h *Handler) GenerateDraftClass(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateDraftClass")
	defer span.End()

	generated, err := h.classService.GenerateClass(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "generate draft class failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, generateClassResponse{Generated: generated})
}

func (h *Handler) ListProspects(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProspects")
	defer span.End()

	prospects, err := h.classService.ListProspects(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list prospects failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]prospectDTO, 0, len(prospects))
	for _, p := range prospects {
		items = append(items, prospectToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDraftOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftOrder")
	defer span.End()

	order, err := h.orderService.GetOrder(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get draft order failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(order))
}

func (h *Handler) SetDraftOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetDraftOrder")
	defer span.End()

	var req setOrderRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	order := make([]draft.Pick, 0, len(req.Picks))
	for _, d := range req.Picks {
		order = append(order, pickFromDTO(d))
	}

	if err := h.orderService.SetOrder(ctx, order); err != nil {
		h.logger.WarnContext(ctx, "set draft order failed", "picks", len(order), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(order))
}

func (h *Handler) GenerateDraftOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateDraftOrder")
	defer span.End()

	order, err := h.orderService.GenerateOrder(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "generate draft order failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, picksToDTO(order))
}

func (h *Handler) RunLottery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLottery")
	defer span.End()

	results, order, err := h.orderService.RunLottery(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "run lottery failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lotteryRunResponse{
		Results: results,
		Order:   picksToDTO(order),
	})
}

func (h *Handler) GetLotteryProbabilities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLotteryProbabilities")
	defer span.End()

	teams, probs, err := h.orderService.LotteryProbabilities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "lottery probabilities failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lotteryProbabilitiesResponse{
		Teams: teams,
		Probs: probs,
	})
}

func (h *Handler) SimulateLottery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateLottery")
	defer span.End()

	trials := 10000
	if raw := strings.TrimSpace(r.URL.Query().Get("trials")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid trials %q", usecase.ErrInvalidInput, raw))
			return
		}
		trials = parsed
	}
	if trials > h.lotteryMaxTrials {
		writeError(ctx, w, fmt.Errorf("%w: trials %d exceeds limit %d",
			usecase.ErrInvalidInput, trials, h.lotteryMaxTrials))
		return
	}

	freqs, err := h.orderService.SimulateLottery(ctx, trials)
	if err != nil {
		h.logger.ErrorContext(ctx, "simulate lottery failed", "trials", trials, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lotterySimulationResponse{
		Trials:      trials,
		Frequencies: freqs,
	})
}

func (h *Handler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayer")
	defer span.End()

	var req selectPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	order, err := h.orderService.GetOrder(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if len(order) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: no picks remain in the draft order", usecase.ErrInvariantViolation))
		return
	}
	// Find the requested slot anywhere on the board. Whether a non-head
	// pick is allowed is the pick service's call (turn validation is a
	// league setting).
	idx := -1
	for i, p := range order {
		if p.Round == req.Round && p.Pick == req.Pick && p.TID == req.TID {
			idx = i
			break
		}
	}
	if idx == -1 {
		head := order[0]
		writeError(ctx, w, fmt.Errorf("%w: round %d pick %d is not an open slot for team %d; next pick is round %d pick %d for team %d",
			usecase.ErrOutOfTurn, req.Round, req.Pick, req.TID, head.Round, head.Pick, head.TID))
		return
	}

	pid, err := h.pickService.SelectPlayer(ctx, order[idx], req.PID)
	if err != nil {
		h.logger.WarnContext(ctx, "select player failed",
			"round", req.Round, "pick", req.Pick, "tid", req.TID, "pid", req.PID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// Consume the slot only after the selection landed.
	remaining := make([]draft.Pick, 0, len(order)-1)
	remaining = append(remaining, order[:idx]...)
	remaining = append(remaining, order[idx+1:]...)
	if err := h.orderService.SetOrder(ctx, remaining); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, ok, err := h.pickService.DraftedPlayer(ctx, pid)
	if err != nil || !ok {
		h.logger.ErrorContext(ctx, "load drafted player failed", "pid", pid, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: drafted player %d", usecase.ErrNotFound, pid))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftedPlayerToDTO(p))
}
