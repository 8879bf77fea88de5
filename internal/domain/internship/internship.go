package internship

import (
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
)

type Internship struct {
	ID           common.UUID `json:"id"`
	PostedBy     common.UUID `json:"posted_by"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Company      string      `json:"company"`
	Location     string      `json:"location"`
	Requirements []string    `json:"requirements"`
	Stipend      string      `json:"stipend,omitempty"`
	Duration     string      `json:"duration,omitempty"`
	Deadline     *time.Time  `json:"deadline,omitempty"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// DeadlinePassed reports whether the posting no longer accepts applications
// because of its deadline. A nil deadline never passes.
func (i Internship) DeadlinePassed(now time.Time) bool {
	return i.Deadline != nil && now.After(*i.Deadline)
}

// Update carries a partial edit: nil fields keep their current value.
type Update struct {
	Title        *string
	Description  *string
	Company      *string
	Location     *string
	Requirements *[]string
	Stipend      *string
	Duration     *string
	Deadline     *time.Time
	IsActive     *bool
}
