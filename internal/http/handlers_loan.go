package http

import (
	"net/http"
	"strings"

	"finbuddy/internal/amqp"
	"finbuddy/internal/auth"
	"finbuddy/internal/core"
)

type loanRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	MonthlyEMI float64 `json:"monthly_emi"`
	TenureLeft int     `json:"tenure_left"`
	IsPaid     bool    `json:"is_paid"`
}

func (req loanRequest) toRecord(userID int64) (*core.Loan, error) {
	record := &core.Loan{
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		Amount:     req.Amount,
		MonthlyEMI: req.MonthlyEMI,
		TenureLeft: req.TenureLeft,
		IsPaid:     req.IsPaid,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// handleLoanIndex lists the user's loans with the outstanding EMI view
// attached. The summary baseline is zero: it shows pure obligations,
// not savings.
func (s *Server) handleLoanIndex(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	records, err := s.store.ListLoans(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	summary, err := s.summaries.DeductLoans(r.Context(), userID, 0)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"status":  true,
		"loans":   records,
		"summary": summary,
	})
}

func (s *Server) handleLoanCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req loanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	record, err := req.toRecord(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateLoan(r.Context(), record); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindLoan, record.ID, amqp.OpCreate)
	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusCreated, envelope{"status": true, "loan": record})
}

func (s *Server) handleLoanShow(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedLoan(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "loan": record})
}

func (s *Server) handleLoanUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedLoan(w, r)
	if !ok {
		return
	}

	var req loanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	updated, err := req.toRecord(record.UserID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	updated.ID = record.ID

	if err := s.store.UpdateLoan(r.Context(), updated); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindLoan, updated.ID, amqp.OpUpdate)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "loan": updated})
}

func (s *Server) handleLoanDelete(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedLoan(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteLoan(r.Context(), record.ID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindLoan, record.ID, amqp.OpDelete)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "loan deleted"})
}

func (s *Server) ownedLoan(w http.ResponseWriter, r *http.Request) (*core.Loan, bool) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	record, err := s.store.GetLoan(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	if record.UserID != userID {
		respondError(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return record, true
}
