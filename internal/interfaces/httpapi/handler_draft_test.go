package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
	"github.com/riskibarqy/franchise-gm/internal/usecase"
)

func newTestRouter(t *testing.T, mutate func(*league.Settings)) http.Handler {
	t.Helper()

	settings := league.Settings{
		NumTeams:        30,
		NumRounds:       2,
		DraftType:       league.DraftNBA1994,
		ClassSize:       70,
		RookieBaseYears: 4,
		ValidateTurn:    true,
		Seed:            7,
	}
	if mutate != nil {
		mutate(&settings)
	}
	if err := settings.Validate(); err != nil {
		t.Fatalf("settings: %v", err)
	}

	teams := memory.SeedTeams()
	teamRepo := memory.NewTeamRepository(teams)
	teamRepo.SetStandings(memory.SeedSeason, memory.SeedStandings(teams))
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagueState())
	playerRepo := memory.NewPlayerRepository(nil)
	orderRepo := memory.NewDraftOrderRepository()

	rng := random.NewSeeded(settings.Seed)
	logger := logging.NewNop()

	classSvc := usecase.NewDraftClassService(playerRepo, teamRepo, leagueRepo, settings, rng, logger)
	orderSvc := usecase.NewDraftOrderService(orderRepo, teamRepo, leagueRepo, settings, rng, logger)
	pickSvc := usecase.NewDraftPickService(playerRepo, teamRepo, orderRepo, leagueRepo, settings, logger)
	seasonSvc := usecase.NewSeasonService(leagueRepo, logger)
	autoSvc := usecase.NewAutoplayService(pickSvc, playerRepo, orderRepo, leagueRepo, seasonSvc, rng, logger)

	pool, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("ants pool: %v", err)
	}
	t.Cleanup(pool.Release)

	handler := NewHandler(classSvc, orderSvc, pickSvc, autoSvc, seasonSvc, pool, 1000000, logger)
	return NewRouter(handler, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("%s %s: unmarshal response: %v", method, path, err)
		}
	}
	return rec, envelope
}

func dataOf(t *testing.T, envelope map[string]any) any {
	t.Helper()
	data, ok := envelope["data"]
	if !ok {
		t.Fatalf("response envelope has no data: %v", envelope)
	}
	return data
}

func TestDraftFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/draft/class", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate class: status %d body %s", rec.Code, rec.Body.String())
	}
	class := dataOf(t, envelope).(map[string]any)
	if got := class["generated"].(float64); got != 70 {
		t.Fatalf("generated %v prospects", got)
	}

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/draft/order/generate", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate order: status %d body %s", rec.Code, rec.Body.String())
	}
	order := dataOf(t, envelope).([]any)
	if len(order) != 60 {
		t.Fatalf("order has %d picks", len(order))
	}

	// Drafting out of order is a conflict.
	second := order[1].(map[string]any)
	body := fmt.Sprintf(`{"round":%v,"pick":%v,"tid":%v,"pid":1}`,
		second["round"], second["pick"], second["tid"])
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/draft/pick", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("out-of-turn pick: status %d body %s", rec.Code, rec.Body.String())
	}

	// The head pick with the top prospect succeeds.
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/draft/prospects", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list prospects: status %d", rec.Code)
	}
	prospects := dataOf(t, envelope).([]any)
	topPID := prospects[0].(map[string]any)["pid"].(float64)

	head := order[0].(map[string]any)
	body = fmt.Sprintf(`{"round":%v,"pick":%v,"tid":%v,"pid":%v}`,
		head["round"], head["pick"], head["tid"], topPID)
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/draft/pick", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("select player: status %d body %s", rec.Code, rec.Body.String())
	}
	drafted := dataOf(t, envelope).(map[string]any)
	if drafted["contract_amount"].(float64) != 5000 {
		t.Fatalf("first overall salary %v", drafted["contract_amount"])
	}

	// The order head moved on.
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/draft/order", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get order: status %d", rec.Code)
	}
	remaining := dataOf(t, envelope).([]any)
	if len(remaining) != 59 {
		t.Fatalf("order has %d picks after one selection", len(remaining))
	}

	// Autoplay runs to the user's turn.
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/draft/autoplay", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("autoplay: status %d body %s", rec.Code, rec.Body.String())
	}
	run := dataOf(t, envelope).(map[string]any)
	if run["status"].(string) != autoplayStatusDone {
		t.Fatalf("autoplay status %v", run["status"])
	}
	if n := len(run["drafted"].([]any)); n != 13 {
		t.Fatalf("autoplay drafted %d players, want 13", n)
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/draft/order", "")
	remaining = dataOf(t, envelope).([]any)
	headNow := remaining[0].(map[string]any)
	if headNow["pick"].(float64) != 15 || headNow["tid"].(float64) != float64(memory.SeedUserTID) {
		t.Fatalf("head pick %v, want the user's pick 15", headNow)
	}
}

func TestLotteryEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/draft/lottery/probabilities", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("probabilities: status %d body %s", rec.Code, rec.Body.String())
	}
	data := dataOf(t, envelope).(map[string]any)
	probs := data["probs"].([]any)
	if len(probs) != 14 {
		t.Fatalf("probability table has %d rows", len(probs))
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/draft/lottery/simulation?trials=2000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("simulation: status %d body %s", rec.Code, rec.Body.String())
	}
	sim := dataOf(t, envelope).(map[string]any)
	if sim["trials"].(float64) != 2000 {
		t.Fatalf("trials %v", sim["trials"])
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/draft/lottery/simulation?trials=notanumber", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad trials: status %d", rec.Code)
	}

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/draft/lottery", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("run lottery: status %d body %s", rec.Code, rec.Body.String())
	}
	result := dataOf(t, envelope).(map[string]any)
	if len(result["results"].([]any)) != 14 {
		t.Fatalf("lottery results %v", result["results"])
	}
}

func TestSetOrderValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, _ := doJSON(t, router, http.MethodPut, "/api/v1/draft/order",
		`{"picks":[{"round":1,"pick":1,"tid":0,"original_tid":0},{"round":1,"pick":1,"tid":1,"original_tid":1}]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate pick: status %d body %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/api/v1/draft/order", `{"picks": [{]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("broken JSON: status %d", rec.Code)
	}
}

func TestAsyncAutoplayOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/draft/class", ""); rec.Code != http.StatusCreated {
		t.Fatalf("generate class: status %d", rec.Code)
	}
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/draft/order/generate", ""); rec.Code != http.StatusCreated {
		t.Fatalf("generate order: status %d", rec.Code)
	}

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/draft/autoplay?async=true", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("async autoplay: status %d body %s", rec.Code, rec.Body.String())
	}
	run := dataOf(t, envelope).(map[string]any)
	runID := int(run["run_id"].(float64))

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec, envelope = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/draft/autoplay/runs/%d", runID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get run: status %d body %s", rec.Code, rec.Body.String())
		}
		run = dataOf(t, envelope).(map[string]any)
		if run["status"].(string) != autoplayStatusRunning {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("async autoplay did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if run["status"].(string) != autoplayStatusDone {
		t.Fatalf("run finished with status %v error %v", run["status"], run["error"])
	}
	if n := len(run["drafted"].([]any)); n != 14 {
		t.Fatalf("async autoplay drafted %d players, want 14", n)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/draft/autoplay/runs/9999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown run: status %d", rec.Code)
	}
}

func TestSelectPlayerAnywhereWhenTurnUnchecked(t *testing.T) {
	router := newTestRouter(t, func(s *league.Settings) {
		s.ValidateTurn = false
	})

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/draft/class", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate class: status %d", rec.Code)
	}
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/draft/order/generate", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate order: status %d", rec.Code)
	}
	order := dataOf(t, envelope).([]any)
	head := order[0].(map[string]any)
	fifth := order[4].(map[string]any)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/draft/prospects", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list prospects: status %d", rec.Code)
	}
	topPID := dataOf(t, envelope).([]any)[0].(map[string]any)["pid"].(float64)

	// With turn validation off, a team can jump the queue.
	body := fmt.Sprintf(`{"round":%v,"pick":%v,"tid":%v,"pid":%v}`,
		fifth["round"], fifth["pick"], fifth["tid"], topPID)
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/draft/pick", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("mid-order pick: status %d body %s", rec.Code, rec.Body.String())
	}

	// Only that slot is consumed; the head still waits its turn.
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/draft/order", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get order: status %d", rec.Code)
	}
	remaining := dataOf(t, envelope).([]any)
	if len(remaining) != 59 {
		t.Fatalf("order has %d picks after the mid-order selection", len(remaining))
	}
	headNow := remaining[0].(map[string]any)
	if headNow["pick"].(float64) != head["pick"].(float64) || headNow["tid"].(float64) != head["tid"].(float64) {
		t.Fatalf("head changed: %v, want %v", headNow, head)
	}
	for _, entry := range remaining {
		p := entry.(map[string]any)
		if p["round"] == fifth["round"] && p["pick"] == fifth["pick"] {
			t.Fatalf("consumed slot still on the board: %v", p)
		}
	}

	// A slot that is not on the board at all is still a conflict.
	body = fmt.Sprintf(`{"round":%v,"pick":%v,"tid":%v,"pid":2}`,
		fifth["round"], fifth["pick"], fifth["tid"])
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/draft/pick", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-drafting a consumed slot: status %d body %s", rec.Code, rec.Body.String())
	}
}
