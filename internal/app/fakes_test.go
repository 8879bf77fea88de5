package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
	"github.com/LiveKiller/placement-website/internal/domain/internship"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
	"github.com/LiveKiller/placement-website/internal/domain/report"
	"github.com/LiveKiller/placement-website/internal/domain/user"
)

func errNotFound(msg string) error {
	return common.NewError(common.CodeNotFound, msg, nil)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func applicationFor(internshipID, studentID common.UUID) application.Application {
	return application.Application{InternshipID: internshipID, StudentID: studentID, Status: application.StatusPending}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[common.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[common.UUID]user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = common.NewUUID()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	r.users[account.ID] = account
	return &account, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.users[id]
	if !ok {
		return nil, errNotFound("user not found")
	}
	return &account, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.users {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, errNotFound("user not found")
}

func (r *fakeUserRepo) Update(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[account.ID]; !ok {
		return nil, errNotFound("user not found")
	}
	account.UpdatedAt = time.Now().UTC()
	r.users[account.ID] = account
	return &account, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[common.UUID]profile.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[common.UUID]profile.Student)}
}

func (r *fakeStudentRepo) Create(ctx context.Context, p profile.Student) (*profile.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	r.students[p.ID] = p
	return &p, nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id common.UUID) (*profile.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.students[id]
	if !ok {
		return nil, errNotFound("student profile not found")
	}
	return &p, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.students {
		if p.UserID == userID {
			found := p
			return &found, nil
		}
	}
	return nil, errNotFound("student profile not found")
}

func (r *fakeStudentRepo) Update(ctx context.Context, p profile.Student) (*profile.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[p.ID]; !ok {
		return nil, errNotFound("student profile not found")
	}
	r.students[p.ID] = p
	return &p, nil
}

func (r *fakeStudentRepo) List(ctx context.Context, department, course string) ([]profile.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.Student
	for _, p := range r.students {
		if department != "" && p.Department != department {
			continue
		}
		if course != "" && p.Course != course {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeStudentRepo) Search(ctx context.Context, query string) ([]profile.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.Student
	for _, p := range r.students {
		if containsFold(p.FullName, query) || containsFold(p.Department, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeFacultyRepo struct {
	mu      sync.Mutex
	faculty map[common.UUID]profile.Faculty
}

func newFakeFacultyRepo() *fakeFacultyRepo {
	return &fakeFacultyRepo{faculty: make(map[common.UUID]profile.Faculty)}
}

func (r *fakeFacultyRepo) Create(ctx context.Context, p profile.Faculty) (*profile.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	r.faculty[p.ID] = p
	return &p, nil
}

func (r *fakeFacultyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.faculty {
		if p.UserID == userID {
			found := p
			return &found, nil
		}
	}
	return nil, errNotFound("faculty profile not found")
}

func (r *fakeFacultyRepo) Update(ctx context.Context, p profile.Faculty) (*profile.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculty[p.ID]; !ok {
		return nil, errNotFound("faculty profile not found")
	}
	r.faculty[p.ID] = p
	return &p, nil
}

type fakeHiringRepo struct {
	mu     sync.Mutex
	hiring map[common.UUID]profile.Hiring
}

func newFakeHiringRepo() *fakeHiringRepo {
	return &fakeHiringRepo{hiring: make(map[common.UUID]profile.Hiring)}
}

func (r *fakeHiringRepo) Create(ctx context.Context, p profile.Hiring) (*profile.Hiring, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	r.hiring[p.ID] = p
	return &p, nil
}

func (r *fakeHiringRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Hiring, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.hiring {
		if p.UserID == userID {
			found := p
			return &found, nil
		}
	}
	return nil, errNotFound("hiring profile not found")
}

func (r *fakeHiringRepo) Update(ctx context.Context, p profile.Hiring) (*profile.Hiring, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hiring[p.ID]; !ok {
		return nil, errNotFound("hiring profile not found")
	}
	r.hiring[p.ID] = p
	return &p, nil
}

type fakeInternshipRepo struct {
	mu       sync.Mutex
	postings map[common.UUID]internship.Internship
}

func newFakeInternshipRepo() *fakeInternshipRepo {
	return &fakeInternshipRepo{postings: make(map[common.UUID]internship.Internship)}
}

func (r *fakeInternshipRepo) Create(ctx context.Context, posting internship.Internship) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting.ID = common.NewUUID()
	posting.CreatedAt = time.Now().UTC()
	posting.UpdatedAt = posting.CreatedAt
	r.postings[posting.ID] = posting
	return &posting, nil
}

func (r *fakeInternshipRepo) Update(ctx context.Context, posting internship.Internship) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postings[posting.ID]; !ok {
		return nil, errNotFound("internship not found")
	}
	posting.UpdatedAt = time.Now().UTC()
	r.postings[posting.ID] = posting
	return &posting, nil
}

func (r *fakeInternshipRepo) GetByID(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting, ok := r.postings[id]
	if !ok {
		return nil, errNotFound("internship not found")
	}
	return &posting, nil
}

func (r *fakeInternshipRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postings[id]; !ok {
		return errNotFound("internship not found")
	}
	delete(r.postings, id)
	return nil
}

func (r *fakeInternshipRepo) ListActive(ctx context.Context) ([]internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internship.Internship
	for _, posting := range r.postings {
		if posting.IsActive {
			out = append(out, posting)
		}
	}
	return out, nil
}

func (r *fakeInternshipRepo) ListByPoster(ctx context.Context, postedBy common.UUID, activeFilter *bool) ([]internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internship.Internship
	for _, posting := range r.postings {
		if posting.PostedBy != postedBy {
			continue
		}
		if activeFilter != nil && posting.IsActive != *activeFilter {
			continue
		}
		out = append(out, posting)
	}
	return out, nil
}

func (r *fakeInternshipRepo) Search(ctx context.Context, query string) ([]internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internship.Internship
	for _, posting := range r.postings {
		if containsFold(posting.Title, query) || containsFold(posting.Company, query) {
			out = append(out, posting)
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[common.UUID]application.Application
	internships  *fakeInternshipRepo
}

func newFakeApplicationRepo(internships *fakeInternshipRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[common.UUID]application.Application),
		internships:  internships,
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.InternshipID == app.InternshipID && existing.StudentID == app.StudentID {
			return nil, common.NewDomainError(common.CodeConflict, common.ReasonDuplicateApplication, "already applied for this internship")
		}
	}
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	app.UpdatedAt = app.AppliedAt
	r.applications[app.ID] = app
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[id]
	if !ok {
		return nil, errNotFound("application not found")
	}
	return &app, nil
}

func (r *fakeApplicationRepo) FindByInternshipAndStudent(ctx context.Context, internshipID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.InternshipID == internshipID && app.StudentID == studentID {
			found := app
			return &found, nil
		}
	}
	return nil, errNotFound("application not found")
}

func (r *fakeApplicationRepo) Update(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[app.ID]; !ok {
		return nil, errNotFound("application not found")
	}
	app.UpdatedAt = time.Now().UTC()
	r.applications[app.ID] = app
	return &app, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[id]; !ok {
		return errNotFound("application not found")
	}
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Application
	for _, app := range r.applications {
		if app.StudentID == studentID {
			out = append(out, app)
		}
	}
	return out, nil
}

func matchesFilter(app application.Application, filter application.Filter) bool {
	if filter.Status != nil && app.Status != *filter.Status {
		return false
	}
	if filter.FacultyApproval != nil && app.FacultyApproval != *filter.FacultyApproval {
		return false
	}
	if !filter.InternshipID.IsZero() && app.InternshipID != filter.InternshipID {
		return false
	}
	return true
}

func (r *fakeApplicationRepo) ListForPoster(ctx context.Context, postedBy common.UUID, filter application.Filter) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Application
	for _, app := range r.applications {
		posting, err := r.internships.GetByID(ctx, app.InternshipID)
		if err != nil || posting.PostedBy != postedBy {
			continue
		}
		if matchesFilter(app, filter) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, filter application.Filter) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Application
	for _, app := range r.applications {
		if matchesFilter(app, filter) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) CountByInternship(ctx context.Context, internshipID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, app := range r.applications {
		if app.InternshipID == internshipID {
			count++
		}
	}
	return count, nil
}

func (r *fakeApplicationRepo) CountByStudent(ctx context.Context, studentID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, app := range r.applications {
		if app.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

type fakeReportRepo struct {
	stats        report.Stats
	byDepartment map[string]int
	byCompany    map[string]int
}

func (r *fakeReportRepo) Stats(ctx context.Context) (*report.Stats, error) {
	stats := r.stats
	return &stats, nil
}

func (r *fakeReportRepo) ApplicationsByDepartment(ctx context.Context) (map[string]int, error) {
	return r.byDepartment, nil
}

func (r *fakeReportRepo) ApplicationsByCompany(ctx context.Context) (map[string]int, error) {
	return r.byCompany, nil
}
