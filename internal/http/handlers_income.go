package http

import (
	"net/http"
	"strings"

	"finbuddy/internal/amqp"
	"finbuddy/internal/auth"
	"finbuddy/internal/core"
)

type incomeRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   int     `json:"type"`
}

func (req incomeRequest) toRecord(userID int64) (*core.Income, error) {
	t, err := core.ParseIncomeType(req.Type)
	if err != nil {
		return nil, err
	}
	record := &core.Income{
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

// handleIncomeIndex lists the user's incomes with the per-category
// breakdown attached.
func (s *Server) handleIncomeIndex(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	records, err := s.store.ListIncomes(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"status":  true,
		"incomes": records,
		"summary": core.AggregateIncomes(records),
	})
}

func (s *Server) handleIncomeCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	record, err := req.toRecord(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateIncome(r.Context(), record); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindIncome, record.ID, amqp.OpCreate)
	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusCreated, envelope{"status": true, "income": record})
}

func (s *Server) handleIncomeShow(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedIncome(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "income": record})
}

func (s *Server) handleIncomeUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedIncome(w, r)
	if !ok {
		return
	}

	var req incomeRequest
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

	if err := s.store.UpdateIncome(r.Context(), updated); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindIncome, updated.ID, amqp.OpUpdate)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "income": updated})
}

func (s *Server) handleIncomeDelete(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedIncome(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteIncome(r.Context(), record.ID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindIncome, record.ID, amqp.OpDelete)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "income deleted"})
}

// ownedIncome loads the routed income and enforces ownership.
func (s *Server) ownedIncome(w http.ResponseWriter, r *http.Request) (*core.Income, bool) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	record, err := s.store.GetIncome(r.Context(), id)
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
