package handlers

import (
	"net/http"

	"github.com/LiveKiller/placement-website/internal/app"
	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/http/response"
)

type ReportHandler struct {
	reports *app.ReportService
}

func NewReportHandler(reports *app.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *ReportHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.Error(w, common.NewValidationError("missing query", map[string]string{"q": "q is required"}))
		return
	}
	result, err := h.reports.Search(r.Context(), query, r.URL.Query().Get("category"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ReportHandler) FacultyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.FacultyReport(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ReportHandler) Students(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.Students(r.Context(), r.URL.Query().Get("department"), r.URL.Query().Get("course"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
