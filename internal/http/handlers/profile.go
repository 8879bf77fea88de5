package handlers

import (
	"net/http"

	"github.com/LiveKiller/placement-website/internal/app"
	"github.com/LiveKiller/placement-website/internal/http/middleware"
	"github.com/LiveKiller/placement-website/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`

	FullName   *string   `json:"full_name,omitempty"`
	Course     *string   `json:"course,omitempty"`
	Department *string   `json:"department,omitempty"`
	CGPA       *float64  `json:"cgpa,omitempty"`
	Skills     *[]string `json:"skills,omitempty"`
	ResumeURL  *string   `json:"resume_url,omitempty"`
	Position   *string   `json:"position,omitempty"`

	CompanyName        *string `json:"company_name,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
	ContactNumber      *string `json:"contact_number,omitempty"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	result, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.profiles.Update(r.Context(), userID, app.ProfileUpdate{
		Email:              req.Email,
		Password:           req.Password,
		FullName:           req.FullName,
		Course:             req.Course,
		Department:         req.Department,
		CGPA:               req.CGPA,
		Skills:             req.Skills,
		ResumeURL:          req.ResumeURL,
		Position:           req.Position,
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		CompanyDescription: req.CompanyDescription,
		ContactNumber:      req.ContactNumber,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
