package http

import (
	"net/http"
	"strings"

	"finbuddy/internal/amqp"
	"finbuddy/internal/auth"
	"finbuddy/internal/core"
)

type expenseRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   int     `json:"type"`
}

func (req expenseRequest) toRecord(userID int64) (*core.Expense, error) {
	t, err := core.ParseExpenseType(req.Type)
	if err != nil {
		return nil, err
	}
	record := &core.Expense{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Amount: req.Amount,
		Type:   t,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// handleExpenseIndex lists the user's expenses with the per-category
// breakdown attached.
func (s *Server) handleExpenseIndex(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	records, err := s.store.ListExpenses(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"status":   true,
		"expenses": records,
		"summary":  core.AggregateExpenses(records),
	})
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	record, err := req.toRecord(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateExpense(r.Context(), record); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindExpense, record.ID, amqp.OpCreate)
	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusCreated, envelope{"status": true, "expense": record})
}

func (s *Server) handleExpenseShow(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedExpense(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "expense": record})
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedExpense(w, r)
	if !ok {
		return
	}

	var req expenseRequest
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

	if err := s.store.UpdateExpense(r.Context(), updated); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindExpense, updated.ID, amqp.OpUpdate)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "expense": updated})
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedExpense(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteExpense(r.Context(), record.ID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindExpense, record.ID, amqp.OpDelete)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "expense deleted"})
}

func (s *Server) ownedExpense(w http.ResponseWriter, r *http.Request) (*core.Expense, bool) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	record, err := s.store.GetExpense(r.Context(), id)
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
