package handler

import (
	"net/http"

	"oppositerush/internal/cache"
	"oppositerush/internal/repository"
)

// LeaderboardHandler serves the global ranking and match history.
type LeaderboardHandler struct {
	leaderboard cache.LeaderboardCache
	matchRepo   repository.MatchRepo
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(leaderboard cache.LeaderboardCache, matchRepo repository.MatchRepo) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboard,
		matchRepo:   matchRepo,
	}
}

// Top handles GET /v1/leaderboard.
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, 10, 100)
	entries, err := h.leaderboard.GetTop(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// RecentMatches handles GET /v1/matches/recent.
func (h *LeaderboardHandler) RecentMatches(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, 20, 100)
	matches, err := h.matchRepo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load match history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
