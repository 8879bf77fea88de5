package application

import (
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Application struct {
	ID              common.UUID `json:"id"`
	InternshipID    common.UUID `json:"internship_id"`
	StudentID       common.UUID `json:"student_id"`
	Status          Status      `json:"status"`
	FacultyApproval bool        `json:"faculty_approval"`
	HiringApproval  bool        `json:"hiring_approval"`
	CoverLetter     string      `json:"cover_letter,omitempty"`
	Feedback        string      `json:"feedback,omitempty"`
	AppliedAt       time.Time   `json:"applied_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Final reports whether the application reached a terminal status. Approved
// and rejected applications are no longer editable by anyone.
func (a Application) Final() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}
