package http

import (
	"net/http"
	"strings"

	"finbuddy/internal/amqp"
	"finbuddy/internal/auth"
	"finbuddy/internal/core"
)

type investmentRequest struct {
	Principal            float64 `json:"principal"`
	RateOfInterest       float64 `json:"rate_of_interest"`
	CompoundingFrequency int     `json:"compounding_frequency"`
	Time                 float64 `json:"time"`
	Type                 string  `json:"type"`
}

func (req investmentRequest) toRecord(userID int64) (*core.Investment, error) {
	f, err := core.ParseCompoundingFrequency(req.CompoundingFrequency)
	if err != nil {
		return nil, err
	}
	record := &core.Investment{
		UserID:               userID,
		Principal:            req.Principal,
		RateOfInterest:       req.RateOfInterest,
		CompoundingFrequency: f,
		Time:                 req.Time,
		Type:                 strings.TrimSpace(req.Type),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// investmentView is an investment with its projected growth attached.
type investmentView struct {
	core.Investment
	Growth core.InvestmentGrowth `json:"growth"`
}

func withGrowth(v core.Investment) investmentView {
	growth, err := core.Growth(v.Principal, v.RateOfInterest, v.CompoundingFrequency.PeriodsPerYear(), v.Time)
	if err != nil {
		// PeriodsPerYear never returns a non-positive count for stored
		// records, so this only guards future enum changes.
		growth = core.InvestmentGrowth{FinalAmount: v.Principal}
	}
	return investmentView{Investment: v, Growth: growth}
}

// handleInvestmentIndex lists investments with projected final value
// and profit per record.
func (s *Server) handleInvestmentIndex(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	records, err := s.store.ListInvestments(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	views := make([]investmentView, 0, len(records))
	totalProfit := 0.0
	for _, v := range records {
		view := withGrowth(v)
		views = append(views, view)
		totalProfit += view.Growth.Profit
	}

	respondJSON(w, http.StatusOK, envelope{
		"status":       true,
		"investments":  views,
		"total_profit": totalProfit,
	})
}

func (s *Server) handleInvestmentCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req investmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	record, err := req.toRecord(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateInvestment(r.Context(), record); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindInvestment, record.ID, amqp.OpCreate)
	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusCreated, envelope{"status": true, "investment": withGrowth(*record)})
}

func (s *Server) handleInvestmentShow(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedInvestment(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "investment": withGrowth(*record)})
}

func (s *Server) handleInvestmentUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedInvestment(w, r)
	if !ok {
		return
	}

	var req investmentRequest
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

	if err := s.store.UpdateInvestment(r.Context(), updated); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindInvestment, updated.ID, amqp.OpUpdate)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "investment": withGrowth(*updated)})
}

func (s *Server) handleInvestmentDelete(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedInvestment(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteInvestment(r.Context(), record.ID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	s.events.Publish(r.Context(), amqp.KindInvestment, record.ID, amqp.OpDelete)
	s.invalidateDashboard(record.UserID)
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "investment deleted"})
}

func (s *Server) ownedInvestment(w http.ResponseWriter, r *http.Request) (*core.Investment, bool) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	record, err := s.store.GetInvestment(r.Context(), id)
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
