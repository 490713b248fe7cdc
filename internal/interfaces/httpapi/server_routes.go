package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/league/state", handler.GetLeagueState)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/v1/draft/class", handler.GenerateDraftClass)
	mux.HandleFunc("GET /api/v1/draft/prospects", handler.ListProspects)

	mux.HandleFunc("GET /api/v1/draft/order", handler.GetDraftOrder)
	mux.HandleFunc("PUT /api/v1/draft/order", handler.SetDraftOrder)
	mux.HandleFunc("POST /api/v1/draft/order/generate", handler.GenerateDraftOrder)

	mux.HandleFunc("POST /api/v1/draft/lottery", handler.RunLottery)
	mux.HandleFunc("GET /api/v1/draft/lottery/probabilities", handler.GetLotteryProbabilities)
	mux.HandleFunc("GET /api/v1/draft/lottery/simulation", handler.SimulateLottery)

	mux.HandleFunc("POST /api/v1/draft/pick", handler.SelectPlayer)

	mux.HandleFunc("POST /api/v1/draft/autoplay", handler.RunAutoplay)
	mux.HandleFunc("GET /api/v1/draft/autoplay/runs/{runID}", handler.GetAutoplayRun)
}
