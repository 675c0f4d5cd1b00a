package http

import (
	"net/http"
	"strings"

	"finbuddy/internal/auth"
	"finbuddy/internal/core"
)

type goalRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Mode       int     `json:"mode"`
	IsAchieved bool    `json:"is_achieved"`
	// MemberIDs, when present on update, replaces the membership set.
	MemberIDs []int64 `json:"member_ids,omitempty"`
}

func (req goalRequest) toRecord() (*core.Goal, error) {
	mode, err := core.ParseGoalMode(req.Mode)
	if err != nil {
		return nil, err
	}
	record := &core.Goal{
		Name:       strings.TrimSpace(req.Name),
		Amount:     req.Amount,
		Mode:       mode,
		IsAchieved: req.IsAchieved,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// handleGoalIndex lists every goal the user belongs to.
func (s *Server) handleGoalIndex(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	goals, err := s.store.ListGoalsForUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "goals": goals})
}

// handleGoalCreate creates a goal with the caller as first member.
func (s *Server) handleGoalCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	record, err := req.toRecord()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateGoal(r.Context(), record, userID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"status": true, "goal": record})
}

// handleGoalShow returns the goal, its members, and each member's
// contribution portion under the goal's split mode.
func (s *Server) handleGoalShow(w http.ResponseWriter, r *http.Request) {
	goal, ok := s.memberGoal(w, r)
	if !ok {
		return
	}

	members, err := s.store.ListGoalMembers(r.Context(), goal.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	split, err := s.goals.SplitGoal(r.Context(), goal.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"status":   true,
		"goal":     goal,
		"members":  members,
		"portions": split,
	})
}

func (s *Server) handleGoalUpdate(w http.ResponseWriter, r *http.Request) {
	goal, ok := s.memberGoal(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	updated, err := req.toRecord()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	updated.ID = goal.ID

	if err := s.store.UpdateGoal(r.Context(), updated, req.MemberIDs); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "goal": updated})
}

func (s *Server) handleGoalDelete(w http.ResponseWriter, r *http.Request) {
	goal, ok := s.memberGoal(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteGoal(r.Context(), goal.ID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "goal deleted"})
}

// handleGoalJoin enrolls the caller into the goal. Joining twice is a
// no-op and still succeeds.
func (s *Server) handleGoalJoin(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.AddGoalMember(r.Context(), id, userID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"status": true, "message": "joined goal"})
}

// memberGoal loads the routed goal and requires the caller to be one
// of its members.
func (s *Server) memberGoal(w http.ResponseWriter, r *http.Request) (*core.Goal, bool) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	goal, err := s.store.GetGoal(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	members, err := s.store.ListGoalMembers(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	for _, m := range members {
		if m.UserID == userID {
			return goal, true
		}
	}
	respondError(w, http.StatusForbidden, "forbidden")
	return nil, false
}
