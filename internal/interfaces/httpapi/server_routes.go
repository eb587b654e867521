package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/scores/preview", handler.PreviewScore)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/reconciliation/runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconciliation)))
	mux.Handle("GET /v1/internal/reconciliation/runs/latest", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetLatestReconciliation)))
	mux.Handle("POST /v1/internal/events/{eventID}/score", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ScoreEvent)))
	mux.Handle("POST /v1/internal/events/{eventID}/rescore", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RescoreEvent)))
}
