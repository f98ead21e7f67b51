package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}", handler.GetWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}/leaderboard", handler.GetWeekLeaderboard)
	mux.HandleFunc("GET /v1/weeks/{weekID}/picks", handler.ListWeekPicks)
	mux.HandleFunc("GET /v1/profiles/{userID}", handler.GetProfile)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/profiles", RequireAuth(verifier, http.HandlerFunc(handler.CreateProfile)))
	mux.Handle("POST /v1/submissions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/submissions/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMySubmissions)))
	mux.Handle("POST /v1/weeks/current/refresh-odds", RequireAuth(verifier, http.HandlerFunc(handler.RefreshCurrentWeekOdds)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileJob)))
}
