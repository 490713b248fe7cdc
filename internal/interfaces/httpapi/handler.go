package httpapi

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/usecase"
)

type Handler struct {
	classService  *usecase.DraftClassService
	orderService  *usecase.DraftOrderService
	pickService   *usecase.DraftPickService
	autoplay      *usecase.AutoplayService
	seasonService *usecase.SeasonService
	logger        *logging.Logger
	validator     *validator.Validate

	// async autoplay runs execute on the worker pool; results are kept
	// in memory for later retrieval.
	autoplayPool     *ants.Pool
	autoplayRuns     sync.Map
	autoplayRunSeq   atomic.Uint64
	lotteryMaxTrials int
}

func NewHandler(
	classService *usecase.DraftClassService,
	orderService *usecase.DraftOrderService,
	pickService *usecase.DraftPickService,
	autoplay *usecase.AutoplayService,
	seasonService *usecase.SeasonService,
	autoplayPool *ants.Pool,
	lotteryMaxTrials int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if lotteryMaxTrials < 1 {
		lotteryMaxTrials = 1000000
	}

	return &Handler{
		classService:     classService,
		orderService:     orderService,
		pickService:      pickService,
		autoplay:         autoplay,
		seasonService:    seasonService,
		logger:           logger,
		validator:        validator.New(),
		autoplayPool:     autoplayPool,
		lotteryMaxTrials: lotteryMaxTrials,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetLeagueState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueState")
	defer span.End()

	state, err := h.seasonService.State(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get league state failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueStateDTO{
		Season:     state.Season,
		Phase:      state.Phase.String(),
		UserTID:    state.UserTID,
		LastChange: state.LastChange,
	})
}
