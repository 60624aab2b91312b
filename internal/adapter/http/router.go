package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	deployH *DeployHandler,
	statusH *StatusHandler,
	apiToken string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(deployCORS())
	r.Use(middleware.RequestSize(maxRequestBodySize))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAPIKey(apiToken))

		r.Post("/deploy", deployH.DeployApp)
		r.Post("/deploy_postgres", deployH.DeployPostgres)
		r.Get("/deployments", deployH.ListRecords)
		r.Get("/status/all", statusH.All)
	})

	return r
}
