package http

import (
	"net/http"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/service"
)

type StatusHandler struct {
	svc *service.StatusService
}

func NewStatusHandler(svc *service.StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

func (h *StatusHandler) All(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.svc.CollectAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}
