package handlers

import (
	"net/http"
	"time"

	"github.com/LiveKiller/placement-website/internal/app"
	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/internship"
	"github.com/LiveKiller/placement-website/internal/domain/user"
	"github.com/LiveKiller/placement-website/internal/http/middleware"
	"github.com/LiveKiller/placement-website/internal/http/response"
)

type InternshipHandler struct {
	internships *app.InternshipService
}

func NewInternshipHandler(internships *app.InternshipService) *InternshipHandler {
	return &InternshipHandler{internships: internships}
}

type internshipRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Requirements []string `json:"requirements"`
	Stipend      string   `json:"stipend"`
	Duration     string   `json:"duration"`
	Deadline     string   `json:"deadline"`
}

type internshipUpdateRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Company      *string   `json:"company,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Requirements *[]string `json:"requirements,omitempty"`
	Stipend      *string   `json:"stipend,omitempty"`
	Duration     *string   `json:"duration,omitempty"`
	Deadline     *string   `json:"deadline,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	deadline, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, common.NewValidationError("invalid deadline", map[string]string{"deadline": "deadline must be an RFC 3339 timestamp"})
	}
	return &deadline, nil
}

func (h *InternshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.internships.Create(r.Context(), userID, internship.Internship{
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		Location:     req.Location,
		Requirements: req.Requirements,
		Stipend:      req.Stipend,
		Duration:     req.Duration,
		Deadline:     deadline,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *InternshipHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	internshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req internshipUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	update := internship.Update{
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		Location:     req.Location,
		Requirements: req.Requirements,
		Stipend:      req.Stipend,
		Duration:     req.Duration,
		IsActive:     req.IsActive,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			response.Error(w, err)
			return
		}
		update.Deadline = deadline
	}
	updated, err := h.internships.Update(r.Context(), userID, internshipID, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *InternshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	internshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.internships.Delete(r.Context(), userID, internshipID); err != nil {
		response.Error(w, err)
		return
	}
	response.Message(w, http.StatusOK, "internship deleted")
}

// List serves both the student catalog and the poster's own postings. The
// view depends on who is asking, not on a query flag.
func (h *InternshipHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	switch role {
	case user.RoleStudent:
		views, err := h.internships.ListForStudent(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, views)
	case user.RoleHiring:
		views, err := h.internships.ListForPoster(r.Context(), userID, r.URL.Query().Get("status"))
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, views)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "access denied", nil))
	}
}

// ListOwn serves GET /hiring/internships: the poster's postings with
// application counts, optionally filtered by status.
func (h *InternshipHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	views, err := h.internships.ListForPoster(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, views)
}

func (h *InternshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	internshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	view, err := h.internships.GetForPoster(r.Context(), userID, internshipID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}
