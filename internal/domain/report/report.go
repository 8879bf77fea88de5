package report

import "context"

type UserCounts struct {
	Students       int `json:"students"`
	Faculty        int `json:"faculty"`
	HiringManagers int `json:"hiring_managers"`
	Total          int `json:"total"`
}

type InternshipCounts struct {
	Active int `json:"active"`
	Total  int `json:"total"`
}

type ApplicationCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

type Stats struct {
	Users        UserCounts        `json:"users"`
	Internships  InternshipCounts  `json:"internships"`
	Applications ApplicationCounts `json:"applications"`
}

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	ApplicationsByDepartment(ctx context.Context) (map[string]int, error)
	ApplicationsByCompany(ctx context.Context) (map[string]int, error)
}
