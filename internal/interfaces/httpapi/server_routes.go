package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{eventID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/assignments", handler.ListAssignments)
	mux.HandleFunc("GET /v1/manual-matches", handler.ListManualMatches)
	mux.HandleFunc("GET /v1/tracked", handler.ListTracked)
}

func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("PUT /v1/assignments", RequireAdminToken(adminToken, http.HandlerFunc(handler.ReplaceAssignments)))
	mux.Handle("PUT /v1/assignments/{participant}", RequireAdminToken(adminToken, http.HandlerFunc(handler.SetAssignment)))
	mux.Handle("POST /v1/manual-matches", RequireAdminToken(adminToken, http.HandlerFunc(handler.AddManualMatch)))
	mux.Handle("DELETE /v1/manual-matches/{eventID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.RemoveManualMatch)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/tick", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunTickJob)))
}
