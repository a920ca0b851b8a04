package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/ops"
)

type handlers struct {
	svc    *ops.Service
	logger *slog.Logger
}

func (h *handlers) riskAnalysis(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Analyze(r.Context(), mode))
}

func (h *handlers) briefing(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Briefing(r.Context(), mode))
}

func (h *handlers) deployments(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.DeploymentPlan(r.Context(), mode))
}

func (h *handlers) vehicles(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	vehicles := h.svc.Vehicles(r.Context(), mode)
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (h *handlers) resources(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"resources": h.svc.Resources(mode),
		"personnel": h.svc.Personnel(),
	})
}

func (h *handlers) weather(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}

	snap := h.svc.Weather(r.Context(), mode)
	resp := struct {
		domain.WeatherSnapshot
		RecommendedMode *domain.Mode `json:"recommendedMode"`
	}{WeatherSnapshot: snap}
	if recommended, active := h.svc.RecommendedMode(r.Context(), mode); active {
		resp.RecommendedMode = &recommended
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) alert(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	alert := h.svc.Alert(r.Context(), mode)
	h.logger.Info("alert drafted", "alert_id", alert.ID, "mode", mode, "type", alert.Type)
	writeJSON(w, http.StatusCreated, alert)
}

func (h *handlers) report(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		writeBadMode(w)
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.Report(r.Context(), mode))
}
