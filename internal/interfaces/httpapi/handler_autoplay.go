package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/franchise-gm/internal/usecase"
)

const (
	autoplayStatusRunning = "running"
	autoplayStatusDone    = "done"
	autoplayStatusFailed  = "failed"
)

// RunAutoplay drafts for non-user teams. With ?async=true the run is
// submitted to the worker pool and the response carries a run id to poll;
// otherwise the request blocks until the user's turn or the end of the
// draft.
func (h *Handler) RunAutoplay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAutoplay")
	defer span.End()

	if r.URL.Query().Get("async") == "true" {
		h.runAutoplayAsync(ctx, w)
		return
	}

	drafted, err := h.autoplay.RunUntilUserOrEnd(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "autoplay failed", "drafted", len(drafted), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, autoplayRunDTO{
		Status:  autoplayStatusDone,
		Drafted: drafted,
	})
}

func (h *Handler) runAutoplayAsync(ctx context.Context, w http.ResponseWriter) {
	runID := h.autoplayRunSeq.Add(1)
	h.autoplayRuns.Store(runID, autoplayRunDTO{RunID: runID, Status: autoplayStatusRunning})

	// The run outlives the request; keep trace linkage but drop the
	// request's cancellation.
	runCtx := context.WithoutCancel(ctx)
	err := h.autoplayPool.Submit(func() {
		drafted, err := h.autoplay.RunUntilUserOrEnd(runCtx)
		if err != nil {
			h.logger.Error("async autoplay failed", "run_id", runID, "error", err)
			h.autoplayRuns.Store(runID, autoplayRunDTO{
				RunID:   runID,
				Status:  autoplayStatusFailed,
				Drafted: drafted,
				Error:   err.Error(),
			})
			return
		}
		h.autoplayRuns.Store(runID, autoplayRunDTO{
			RunID:   runID,
			Status:  autoplayStatusDone,
			Drafted: drafted,
		})
	})
	if err != nil {
		h.autoplayRuns.Delete(runID)
		writeError(ctx, w, fmt.Errorf("%w: autoplay pool rejected the run: %v",
			usecase.ErrDependencyUnavailable, err))
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, autoplayRunDTO{
		RunID:  runID,
		Status: autoplayStatusRunning,
	})
}

func (h *Handler) GetAutoplayRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAutoplayRun")
	defer span.End()

	runID, err := strconv.ParseUint(r.PathValue("runID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid run id %q", usecase.ErrInvalidInput, r.PathValue("runID")))
		return
	}

	run, ok := h.autoplayRuns.Load(runID)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: autoplay run %d", usecase.ErrNotFound, runID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, run)
}
