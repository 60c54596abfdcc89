package handlers

import (
	"net/http"

	"englishpath/internal/security"
)

// Routes bundles the handlers served by the API
type Routes struct {
	Middleware *Middleware
	Limiter    *security.RateLimiter
	Users      *UserHandler
	Progress   *ProgressHandler
	Content    *ContentHandler
	Reports    *ReportHandler
}

// Register mounts every API route on mux
func (rt Routes) Register(mux *http.ServeMux) {
	m := rt.Middleware

	mux.HandleFunc("GET /healthz", Health)

	mux.HandleFunc("GET /api/user", m.RequireUser(rt.Users.GetCurrentUser))
	mux.HandleFunc("POST /api/user", m.RateLimit(rt.Limiter, rt.Users.CreateUser))
	mux.HandleFunc("GET /api/user/suggestion", rt.Users.SuggestUsername)

	mux.HandleFunc("GET /api/modules", m.RequireUser(rt.Progress.ListModules))
	mux.HandleFunc("GET /api/module-progress/{module}", m.RequireUser(rt.Progress.GetModuleProgress))
	mux.HandleFunc("POST /api/module-progress/{module}", m.RequireUser(rt.Progress.RecordModuleProgress))
	mux.HandleFunc("POST /api/practice/complete", m.RequireUser(rt.Progress.CompletePractice))
	mux.HandleFunc("GET /api/summary", m.RequireUser(rt.Progress.Summary))

	mux.HandleFunc("GET /api/content/{module}", rt.Content.GetContent)
	mux.HandleFunc("GET /api/audio/{module}/{item}", rt.Content.GetAudio)

	mux.HandleFunc("POST /api/report", m.RequireUser(m.RateLimit(rt.Limiter, rt.Reports.SendReport)))
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
