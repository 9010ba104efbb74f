// Package server is the thin JSON surface over the pipeline. Filter
// criteria and hidden-match IDs arrive with every request; nothing
// session-scoped lives on this side of the boundary.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dota-tracker/internal/domain"
	"dota-tracker/internal/draft"
	"dota-tracker/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Server struct {
	teamSvc *service.TeamService
	heroSvc *service.HeroService
	logger  zerolog.Logger
}

func New(teamSvc *service.TeamService, heroSvc *service.HeroService, logger zerolog.Logger) *Server {
	return &Server{teamSvc: teamSvc, heroSvc: heroSvc, logger: logger}
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/heroes", s.handleHeroes).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}/overview", s.handleTeamOverview).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{id:[0-9]+}/draft-suggestions", s.handleDraftSuggestions).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHeroes(w http.ResponseWriter, r *http.Request) {
	heroes, err := s.heroSvc.Heroes(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	out := make([]heroResponse, 0, len(heroes))
	for _, h := range heroes {
		out = append(out, toHeroResponse(h))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTeamOverview(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	criteria := criteriaFromQuery(r)
	hidden := hiddenFromList(r.URL.Query().Get("hidden"))

	result, err := s.teamSvc.Overview(r.Context(), teamID, criteria, hidden)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toOverviewResponse(result))
}

type draftRequest struct {
	Phase  string  `json:"phase"`
	Hidden []int64 `json:"hidden"`

	DateRange string   `json:"date_range"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Result    string   `json:"result"`
	Side      string   `json:"side"`
	PickOrder string   `json:"pick_order"`
	Heroes    []int    `json:"heroes"`
	Opponents []string `json:"opponents"`
	Duration  string   `json:"duration"`
	Tags      []string `json:"tags"`
}

func (s *Server) handleDraftSuggestions(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	criteria := domain.MatchFilterCriteria{
		DateRange:       domain.DateRange(req.DateRange),
		Result:          domain.Result(req.Result),
		TeamSide:        domain.Side(req.Side),
		PickOrder:       domain.PickOrder(req.PickOrder),
		HeroesPlayed:    req.Heroes,
		Opponents:       req.Opponents,
		Duration:        domain.DurationBucket(req.Duration),
		PerformanceTags: req.Tags,
	}
	if t, err := time.Parse(time.RFC3339, req.From); err == nil {
		criteria.CustomFrom = t
	}
	if t, err := time.Parse(time.RFC3339, req.To); err == nil {
		criteria.CustomTo = t
	}

	recs, err := s.teamSvc.DraftSuggestions(r.Context(), teamID, draft.Phase(req.Phase), criteria, domain.NewHiddenMatchSet(req.Hidden...))
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func criteriaFromQuery(r *http.Request) domain.MatchFilterCriteria {
	q := r.URL.Query()
	c := domain.MatchFilterCriteria{
		DateRange:       domain.DateRange(q.Get("date_range")),
		Result:          domain.Result(q.Get("result")),
		TeamSide:        domain.Side(q.Get("side")),
		PickOrder:       domain.PickOrder(q.Get("pick_order")),
		Duration:        domain.DurationBucket(q.Get("duration")),
		Opponents:       splitList(q.Get("opponents")),
		PerformanceTags: splitList(q.Get("tags")),
	}
	for _, part := range splitList(q.Get("heroes")) {
		if id, err := strconv.Atoi(part); err == nil {
			c.HeroesPlayed = append(c.HeroesPlayed, id)
		}
	}
	if t, err := time.Parse(time.RFC3339, q.Get("from")); err == nil {
		c.CustomFrom = t
	}
	if t, err := time.Parse(time.RFC3339, q.Get("to")); err == nil {
		c.CustomTo = t
	}
	return c
}

func hiddenFromList(raw string) domain.HiddenMatchSet {
	hidden := domain.NewHiddenMatchSet()
	for _, part := range splitList(raw) {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			hidden.Hide(id)
		}
	}
	return hidden
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
