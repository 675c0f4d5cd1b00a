// Package http serves the finbuddy JSON API.
package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"finbuddy/internal/auth"
	"finbuddy/internal/cache"
	"finbuddy/internal/core"
	"finbuddy/internal/middleware/ratelimit"
	"finbuddy/internal/middleware/security"
	"finbuddy/internal/middleware/trace"
	"finbuddy/internal/services"
)

// Store is everything the handlers need from persistent storage. The
// SQLite repository satisfies it; tests substitute a fake.
type Store interface {
	CreateUser(ctx context.Context, u *core.User) error
	FindUserByEmail(ctx context.Context, email string) (*core.User, error)
	GetUser(ctx context.Context, id int64) (*core.User, error)
	Onboard(ctx context.Context, userID int64, profile *core.Profile, incomes []core.Income, expenses []core.Expense, loans []core.Loan, investments []core.Investment) error

	CreateIncome(ctx context.Context, in *core.Income) error
	GetIncome(ctx context.Context, id int64) (*core.Income, error)
	ListIncomes(ctx context.Context, userID int64) ([]core.Income, error)
	UpdateIncome(ctx context.Context, in *core.Income) error
	DeleteIncome(ctx context.Context, id int64) error
	SumSalaryIncome(ctx context.Context, userID int64) (float64, error)

	CreateExpense(ctx context.Context, ex *core.Expense) error
	GetExpense(ctx context.Context, id int64) (*core.Expense, error)
	ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error)
	UpdateExpense(ctx context.Context, ex *core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error

	CreateLoan(ctx context.Context, l *core.Loan) error
	GetLoan(ctx context.Context, id int64) (*core.Loan, error)
	ListLoans(ctx context.Context, userID int64) ([]core.Loan, error)
	ListUnpaidLoans(ctx context.Context, userID int64) ([]core.Loan, error)
	UpdateLoan(ctx context.Context, l *core.Loan) error
	DeleteLoan(ctx context.Context, id int64) error

	CreateInvestment(ctx context.Context, v *core.Investment) error
	GetInvestment(ctx context.Context, id int64) (*core.Investment, error)
	ListInvestments(ctx context.Context, userID int64) ([]core.Investment, error)
	UpdateInvestment(ctx context.Context, v *core.Investment) error
	DeleteInvestment(ctx context.Context, id int64) error

	CreateGoal(ctx context.Context, g *core.Goal, creatorID int64) error
	GetGoal(ctx context.Context, id int64) (*core.Goal, error)
	ListGoalsForUser(ctx context.Context, userID int64) ([]core.Goal, error)
	ListGoalMembers(ctx context.Context, goalID int64) ([]core.GoalMember, error)
	UpdateGoal(ctx context.Context, g *core.Goal, memberIDs []int64) error
	DeleteGoal(ctx context.Context, id int64) error
	AddGoalMember(ctx context.Context, goalID, userID int64) error
}

type Server struct {
	http.Server

	store     Store
	auth      *auth.Manager
	summaries *services.SummaryService
	goals     *services.GoalService
	events    *services.LedgerEvents

	dashCache *cache.Cache[core.DashboardSummary]
	limiter   *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store Store, authMgr *auth.Manager, events *services.LedgerEvents) *Server {
	s := &Server{
		store:     store,
		auth:      authMgr,
		summaries: services.NewSummaryService(store),
		goals:     services.NewGoalService(store),
		events:    events,
		dashCache: cache.New[core.DashboardSummary](1000, 5*time.Minute),
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	r := mux.NewRouter()
	r.Use(trace.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.limiter.Middleware(trace.ClientIP, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "60")
		respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
	}))

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReadyz).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(authMgr.Middleware(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
	}))

	api.HandleFunc("/user", s.handleCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/onboard", s.handleOnboard).Methods(http.MethodPost)
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	api.HandleFunc("/incomes", s.handleIncomeIndex).Methods(http.MethodGet)
	api.HandleFunc("/incomes", s.handleIncomeCreate).Methods(http.MethodPost)
	api.HandleFunc("/incomes/{id:[0-9]+}", s.handleIncomeShow).Methods(http.MethodGet)
	api.HandleFunc("/incomes/{id:[0-9]+}", s.handleIncomeUpdate).Methods(http.MethodPut)
	api.HandleFunc("/incomes/{id:[0-9]+}", s.handleIncomeDelete).Methods(http.MethodDelete)

	api.HandleFunc("/expenses", s.handleExpenseIndex).Methods(http.MethodGet)
	api.HandleFunc("/expenses", s.handleExpenseCreate).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id:[0-9]+}", s.handleExpenseShow).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id:[0-9]+}", s.handleExpenseUpdate).Methods(http.MethodPut)
	api.HandleFunc("/expenses/{id:[0-9]+}", s.handleExpenseDelete).Methods(http.MethodDelete)

	api.HandleFunc("/loans", s.handleLoanIndex).Methods(http.MethodGet)
	api.HandleFunc("/loans", s.handleLoanCreate).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id:[0-9]+}", s.handleLoanShow).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id:[0-9]+}", s.handleLoanUpdate).Methods(http.MethodPut)
	api.HandleFunc("/loans/{id:[0-9]+}", s.handleLoanDelete).Methods(http.MethodDelete)

	api.HandleFunc("/investments", s.handleInvestmentIndex).Methods(http.MethodGet)
	api.HandleFunc("/investments", s.handleInvestmentCreate).Methods(http.MethodPost)
	api.HandleFunc("/investments/{id:[0-9]+}", s.handleInvestmentShow).Methods(http.MethodGet)
	api.HandleFunc("/investments/{id:[0-9]+}", s.handleInvestmentUpdate).Methods(http.MethodPut)
	api.HandleFunc("/investments/{id:[0-9]+}", s.handleInvestmentDelete).Methods(http.MethodDelete)

	api.HandleFunc("/goals", s.handleGoalIndex).Methods(http.MethodGet)
	api.HandleFunc("/goals", s.handleGoalCreate).Methods(http.MethodPost)
	api.HandleFunc("/goals/{id:[0-9]+}", s.handleGoalShow).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id:[0-9]+}", s.handleGoalUpdate).Methods(http.MethodPut)
	api.HandleFunc("/goals/{id:[0-9]+}", s.handleGoalDelete).Methods(http.MethodDelete)
	api.HandleFunc("/goals/{id:[0-9]+}/join", s.handleGoalJoin).Methods(http.MethodPost)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// Shutdown stops the listener and background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	// Ready once the database answers a cheap read.
	if _, err := s.store.GetUser(r.Context(), 0); err != nil && !errors.Is(err, core.ErrNotFound) {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "ready"})
}

// invalidateDashboard drops the user's cached dashboard after a write.
func (s *Server) invalidateDashboard(userID int64) {
	s.dashCache.Invalidate(userID)
}
