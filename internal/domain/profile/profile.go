package profile

import (
	"github.com/LiveKiller/placement-website/internal/common"
)

// One profile per user, fixed at registration by the account role.

type Student struct {
	ID         common.UUID `json:"id"`
	UserID     common.UUID `json:"user_id"`
	FullName   string      `json:"full_name"`
	Course     string      `json:"course"`
	Department string      `json:"department"`
	CGPA       float64     `json:"cgpa"`
	Skills     []string    `json:"skills"`
	ResumeURL  string      `json:"resume_url,omitempty"`
}

type Faculty struct {
	ID         common.UUID `json:"id"`
	UserID     common.UUID `json:"user_id"`
	FullName   string      `json:"full_name"`
	Department string      `json:"department"`
	Position   string      `json:"position"`
}

type Hiring struct {
	ID                 common.UUID `json:"id"`
	UserID             common.UUID `json:"user_id"`
	CompanyName        string      `json:"company_name"`
	CompanyWebsite     string      `json:"company_website"`
	CompanyDescription string      `json:"company_description"`
	ContactNumber      string      `json:"contact_number"`
}
