package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/LiveKiller/placement-website/internal/app"
	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
	"github.com/LiveKiller/placement-website/internal/domain/user"
	"github.com/LiveKiller/placement-website/internal/http/middleware"
	"github.com/LiveKiller/placement-website/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	InternshipID string `json:"internship_id"`
	CoverLetter  string `json:"cover_letter"`
}

type applicationEditRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type reviewRequest struct {
	Feedback string `json:"feedback"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	internshipID, err := common.ParseUUID(req.InternshipID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid internship id", map[string]string{"internship_id": "internship_id must be a valid id"}))
		return
	}
	h.submit(w, r, internshipID, req.CoverLetter)
}

// ApplyTo is the path-addressed variant: POST /internships/{id}/apply.
func (h *ApplicationHandler) ApplyTo(w http.ResponseWriter, r *http.Request) {
	internshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	// The cover letter body is optional on this route.
	var req applicationEditRequest
	_ = decodeJSON(r, &req)
	h.submit(w, r, internshipID, req.CoverLetter)
}

func (h *ApplicationHandler) submit(w http.ResponseWriter, r *http.Request, internshipID common.UUID, coverLetter string) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil {
		key := "apply:user:" + userID.String()
		if !h.limiter.Allow(key, 30, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "application rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Submit(r.Context(), internshipID, userID, coverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func filterFromQuery(r *http.Request) (application.Filter, error) {
	var filter application.Filter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := application.Status(raw)
		switch status {
		case application.StatusPending, application.StatusApproved, application.StatusRejected:
			filter.Status = &status
		default:
			return filter, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, approved, or rejected"})
		}
	}
	if raw := r.URL.Query().Get("internship_id"); raw != "" {
		id, err := common.ParseUUID(raw)
		if err != nil {
			return filter, common.NewValidationError("invalid internship id", map[string]string{"internship_id": "internship_id must be a valid id"})
		}
		filter.InternshipID = id
	}
	return filter, nil
}

// List returns the applications the caller may see. Students get their own,
// faculty the full queue, hiring managers only faculty-approved applications
// against their own postings.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	switch role {
	case user.RoleStudent:
		details, err := h.applications.ListForStudent(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, details)
	case user.RoleFaculty:
		filter, err := filterFromQuery(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		details, err := h.applications.ListForFaculty(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, details)
	case user.RoleHiring:
		filter, err := filterFromQuery(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		details, err := h.applications.ListForHiring(r.Context(), userID, filter)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, details)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "access denied", nil))
	}
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	var detail *app.Detail
	switch role {
	case user.RoleStudent:
		detail, err = h.applications.GetForStudent(r.Context(), applicationID, userID)
	case user.RoleFaculty:
		detail, err = h.applications.GetForFaculty(r.Context(), applicationID)
	case user.RoleHiring:
		detail, err = h.applications.GetForHiring(r.Context(), applicationID, userID)
	default:
		err = common.NewError(common.CodeForbidden, "access denied", nil)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, detail)
}

func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationEditRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.StudentUpdate(r.Context(), applicationID, userID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.StudentWithdraw(r.Context(), applicationID, userID); err != nil {
		response.Error(w, err)
		return
	}
	response.Message(w, http.StatusOK, "application withdrawn")
}

func (h *ApplicationHandler) FacultyApprove(w http.ResponseWriter, r *http.Request) {
	h.facultyReview(w, r, h.applications.FacultyApprove)
}

func (h *ApplicationHandler) FacultyReject(w http.ResponseWriter, r *http.Request) {
	h.facultyReview(w, r, h.applications.FacultyReject)
}

func (h *ApplicationHandler) facultyReview(w http.ResponseWriter, r *http.Request, review func(context.Context, common.UUID, string) (*application.Application, error)) {
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := review(r.Context(), applicationID, req.Feedback)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) HiringApprove(w http.ResponseWriter, r *http.Request) {
	h.hiringReview(w, r, h.applications.HiringApprove)
}

func (h *ApplicationHandler) HiringReject(w http.ResponseWriter, r *http.Request) {
	h.hiringReview(w, r, h.applications.HiringReject)
}

func (h *ApplicationHandler) hiringReview(w http.ResponseWriter, r *http.Request, review func(context.Context, common.UUID, common.UUID, string) (*application.Application, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := review(r.Context(), applicationID, userID, req.Feedback)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
