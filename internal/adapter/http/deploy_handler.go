package http

import (
	"net/http"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/service"
)

type DeployHandler struct {
	svc *service.DeployService
}

func NewDeployHandler(svc *service.DeployService) *DeployHandler {
	return &DeployHandler{svc: svc}
}

func (h *DeployHandler) DeployApp(w http.ResponseWriter, r *http.Request) {
	var req domain.AppRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeployApp(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Deployment initiated"})
}

// DeployPostgres 的平台错误沿用平台状态码返回。
func (h *DeployHandler) DeployPostgres(w http.ResponseWriter, r *http.Request) {
	var req domain.PostgresRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeployPostgres(r.Context(), req); err != nil {
		writePlatformError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "PostgreSQL deployment initiated"})
}

func (h *DeployHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListRecords(r.Context(), r.URL.Query().Get("app"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
