package policy

import (
	"github.com/LiveKiller/placement-website/internal/domain/user"
)

// Action names an operation a caller wants to perform. The (role, action)
// table below is the single place role checks live; handlers never compare
// role strings themselves.
type Action string

const (
	ActionBrowseInternships Action = "internships.browse"
	ActionPostInternship    Action = "internships.post"
	ActionManageInternship  Action = "internships.manage"
	ActionApply             Action = "applications.apply"
	ActionEditApplication   Action = "applications.edit"
	ActionFacultyReview     Action = "applications.faculty_review"
	ActionHiringReview      Action = "applications.hiring_review"
	ActionListApplications  Action = "applications.list"
	ActionViewStudents      Action = "students.view"
	ActionViewReports       Action = "reports.view"
	ActionViewStats         Action = "stats.view"
	ActionSearch            Action = "search"
)

var rules = map[user.Role]map[Action]bool{
	user.RoleStudent: {
		ActionBrowseInternships: true,
		ActionApply:             true,
		ActionEditApplication:   true,
		ActionListApplications:  true,
		ActionViewStats:         true,
		ActionSearch:            true,
	},
	user.RoleFaculty: {
		ActionFacultyReview:    true,
		ActionListApplications: true,
		ActionViewStudents:     true,
		ActionViewReports:      true,
		ActionViewStats:        true,
		ActionSearch:           true,
	},
	user.RoleHiring: {
		ActionPostInternship:   true,
		ActionManageInternship: true,
		ActionHiringReview:     true,
		ActionListApplications: true,
		ActionViewStats:        true,
		ActionSearch:           true,
	},
}

func Allowed(role user.Role, action Action) bool {
	allowed, ok := rules[role]
	if !ok {
		return false
	}
	return allowed[action]
}
