package app

import (
	"context"
	"strings"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
	"github.com/LiveKiller/placement-website/internal/domain/internship"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
	"github.com/LiveKiller/placement-website/internal/domain/report"
)

type ReportService struct {
	reports      report.Repository
	internships  internship.Repository
	students     profile.StudentRepository
	applications application.Repository
}

func NewReportService(reports report.Repository, internships internship.Repository, students profile.StudentRepository, applications application.Repository) *ReportService {
	return &ReportService{reports: reports, internships: internships, students: students, applications: applications}
}

func (s *ReportService) Stats(ctx context.Context) (*report.Stats, error) {
	return s.reports.Stats(ctx)
}

type SearchResult struct {
	Internships []internship.Internship `json:"internships"`
	Students    []profile.Student       `json:"students"`
}

func (s *ReportService) Search(ctx context.Context, query, category string) (*SearchResult, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case "", "all", "internships", "students":
	default:
		return nil, common.NewValidationError("invalid category", map[string]string{"category": "category must be all, internships, or students"})
	}
	result := &SearchResult{Internships: []internship.Internship{}, Students: []profile.Student{}}
	if category == "" || category == "all" || category == "internships" {
		items, err := s.internships.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Internships = items
	}
	if category == "" || category == "all" || category == "students" {
		items, err := s.students.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Students = items
	}
	return result, nil
}

// FacultyReport aggregates application volume the way placement cells slice
// it: by outcome, by student department, and by hiring company.
type FacultyReport struct {
	StatusCounts     map[string]int `json:"status_counts"`
	DepartmentCounts map[string]int `json:"department_counts"`
	CompanyCounts    map[string]int `json:"company_counts"`
}

func (s *ReportService) FacultyReport(ctx context.Context) (*FacultyReport, error) {
	stats, err := s.reports.Stats(ctx)
	if err != nil {
		return nil, err
	}
	byDepartment, err := s.reports.ApplicationsByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	byCompany, err := s.reports.ApplicationsByCompany(ctx)
	if err != nil {
		return nil, err
	}
	return &FacultyReport{
		StatusCounts: map[string]int{
			"pending":  stats.Applications.Pending,
			"approved": stats.Applications.Approved,
			"rejected": stats.Applications.Rejected,
		},
		DepartmentCounts: byDepartment,
		CompanyCounts:    byCompany,
	}, nil
}

type StudentSummary struct {
	profile.Student
	ApplicationCount int `json:"application_count"`
}

func (s *ReportService) Students(ctx context.Context, department, course string) ([]StudentSummary, error) {
	students, err := s.students.List(ctx, department, course)
	if err != nil {
		return nil, err
	}
	summaries := make([]StudentSummary, 0, len(students))
	for _, student := range students {
		count, err := s.applications.CountByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, StudentSummary{Student: student, ApplicationCount: count})
	}
	return summaries, nil
}
