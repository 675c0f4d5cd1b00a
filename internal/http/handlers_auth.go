package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finbuddy/internal/auth"
	"finbuddy/internal/core"
)

type registerRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Username == "":
		respondError(w, http.StatusUnprocessableEntity, "username is required")
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		respondError(w, http.StatusUnprocessableEntity, "valid email is required")
		return
	case len(req.Password) < 8:
		respondError(w, http.StatusUnprocessableEntity, "password must be at least 8 characters")
		return
	}

	if _, err := s.store.FindUserByEmail(r.Context(), req.Email); err == nil {
		respondError(w, http.StatusUnprocessableEntity, "email already registered")
		return
	} else if !errors.Is(err, core.ErrNotFound) {
		respondDomainError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	user := &core.User{
		Username:     req.Username,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		respondDomainError(w, r, err)
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, envelope{
		"status": true,
		"user":   user,
		"token":  token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := s.store.FindUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, core.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	slog.InfoContext(r.Context(), "User logged in", "user_id", user.ID)
	respondJSON(w, http.StatusOK, envelope{
		"status": true,
		"user":   user,
		"token":  token,
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "user": user})
}

// handleLogout clears the session cookie. Tokens are stateless, so the
// client is expected to drop its copy as well.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "logged out"})
}

type onboardRequest struct {
	Profile struct {
		Location   string `json:"location"`
		Occupation string `json:"occupation"`
		Age        int    `json:"age"`
	} `json:"profile"`
	Incomes     []incomeRequest     `json:"incomes"`
	Expenses    []expenseRequest    `json:"expenses"`
	Loans       []loanRequest       `json:"loans"`
	Investments []investmentRequest `json:"investments"`
}

// handleOnboard stores the first-run wizard payload in one transaction
// and marks the user onboarded.
func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if user.IsOnboard {
		respondError(w, http.StatusUnprocessableEntity, "already onboarded")
		return
	}

	var req onboardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Profile.Age < 0 {
		respondError(w, http.StatusUnprocessableEntity, "age must not be negative")
		return
	}

	incomes := make([]core.Income, 0, len(req.Incomes))
	for _, in := range req.Incomes {
		record, err := in.toRecord(userID)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		incomes = append(incomes, *record)
	}
	expenses := make([]core.Expense, 0, len(req.Expenses))
	for _, ex := range req.Expenses {
		record, err := ex.toRecord(userID)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		expenses = append(expenses, *record)
	}
	loans := make([]core.Loan, 0, len(req.Loans))
	for _, l := range req.Loans {
		record, err := l.toRecord(userID)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		loans = append(loans, *record)
	}
	investments := make([]core.Investment, 0, len(req.Investments))
	for _, v := range req.Investments {
		record, err := v.toRecord(userID)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		investments = append(investments, *record)
	}

	profile := &core.Profile{
		Location:   strings.TrimSpace(req.Profile.Location),
		Occupation: strings.TrimSpace(req.Profile.Occupation),
		Age:        req.Profile.Age,
	}
	if err := s.store.Onboard(r.Context(), userID, profile, incomes, expenses, loans, investments); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusCreated, envelope{
		"status":  true,
		"message": "onboarding complete",
		"profile": profile,
	})
}
