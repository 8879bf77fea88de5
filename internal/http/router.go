package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/LiveKiller/placement-website/internal/http/handlers"
	httpmw "github.com/LiveKiller/placement-website/internal/http/middleware"
	"github.com/LiveKiller/placement-website/internal/policy"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ProfileHandler     *handlers.ProfileHandler
	InternshipHandler  *handlers.InternshipHandler
	ApplicationHandler *handlers.ApplicationHandler
	ReportHandler      *handlers.ReportHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Logger             *slog.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover(r.deps.Logger), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/auth/profile") || strings.HasPrefix(path, "/internships") || strings.HasPrefix(path, "/hiring") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/stats") || strings.HasPrefix(path, "/search") || strings.HasPrefix(path, "/reports") || strings.HasPrefix(path, "/students") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/auth/profile":
		r.deps.ProfileHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && path == "/auth/profile":
		r.deps.ProfileHandler.Update(w, req)
		return
	case req.Method == http.MethodGet && path == "/internships":
		r.deps.InternshipHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/internships":
		r.require(policy.ActionPostInternship, r.deps.InternshipHandler.Create, w, req)
		return
	case req.Method == http.MethodGet && path == "/hiring/internships":
		r.require(policy.ActionManageInternship, r.deps.InternshipHandler.ListOwn, w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/internships/") && strings.HasSuffix(path, "/apply"):
		r.require(policy.ActionApply, r.deps.ApplicationHandler.ApplyTo, w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/internships/"):
		r.require(policy.ActionManageInternship, r.deps.InternshipHandler.Get, w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPatch) && strings.HasPrefix(path, "/internships/"):
		r.require(policy.ActionManageInternship, r.deps.InternshipHandler.Update, w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/internships/"):
		r.require(policy.ActionManageInternship, r.deps.InternshipHandler.Delete, w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		r.require(policy.ActionApply, r.deps.ApplicationHandler.Apply, w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.require(policy.ActionListApplications, r.deps.ApplicationHandler.List, w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/faculty-approve"):
		r.require(policy.ActionFacultyReview, r.deps.ApplicationHandler.FacultyApprove, w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/faculty-reject"):
		r.require(policy.ActionFacultyReview, r.deps.ApplicationHandler.FacultyReject, w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/hiring-approve"):
		r.require(policy.ActionHiringReview, r.deps.ApplicationHandler.HiringApprove, w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/hiring-reject"):
		r.require(policy.ActionHiringReview, r.deps.ApplicationHandler.HiringReject, w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.require(policy.ActionListApplications, r.deps.ApplicationHandler.Get, w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPatch) && strings.HasPrefix(path, "/applications/"):
		r.require(policy.ActionEditApplication, r.deps.ApplicationHandler.Update, w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		r.require(policy.ActionEditApplication, r.deps.ApplicationHandler.Withdraw, w, req)
		return
	case req.Method == http.MethodGet && path == "/stats":
		r.require(policy.ActionViewStats, r.deps.ReportHandler.Stats, w, req)
		return
	case req.Method == http.MethodGet && path == "/search":
		r.require(policy.ActionSearch, r.deps.ReportHandler.Search, w, req)
		return
	case req.Method == http.MethodGet && path == "/reports":
		r.require(policy.ActionViewReports, r.deps.ReportHandler.FacultyReport, w, req)
		return
	case req.Method == http.MethodGet && path == "/students":
		r.require(policy.ActionViewStudents, r.deps.ReportHandler.Students, w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) require(action policy.Action, handler http.HandlerFunc, w http.ResponseWriter, req *http.Request) {
	httpmw.Require(action)(handler).ServeHTTP(w, req)
}
