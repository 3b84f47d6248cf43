package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"theagency-bot/internal/cache"
	"theagency-bot/internal/economy"
	"theagency-bot/pkg/apierror"
	"theagency-bot/pkg/response"

	"github.com/go-chi/chi/v5"
)

const (
	defaultLeaderboardLimit = 5
	maxLeaderboardLimit     = 100

	leaderboardCacheTTL = 60 * time.Second
	balanceCacheTTL     = 30 * time.Second
)

// userIDPattern matches Discord snowflake IDs.
var userIDPattern = regexp.MustCompile(`^\d{17,19}$`)

// EconomyHandler serves the read-only economy endpoints consumed by the website.
type EconomyHandler struct {
	ledger      *economy.Ledger
	leaderboard *economy.Leaderboard
	cache       cache.Cache
}

// NewEconomyHandler creates a new economy handler.
func NewEconomyHandler(ledger *economy.Ledger, leaderboard *economy.Leaderboard, c cache.Cache) *EconomyHandler {
	return &EconomyHandler{
		ledger:      ledger,
		leaderboard: leaderboard,
		cache:       c,
	}
}

// leaderboardRow is the wire shape the website expects: no user IDs exposed.
type leaderboardRow struct {
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

// GetLeaderboard handles GET /api/leaderboard?limit=N
func (h *EconomyHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	if limit < 1 || limit > maxLeaderboardLimit {
		response.Error(w, apierror.BadRequest("Limit must be between 1 and 100"))
		return
	}

	key := fmt.Sprintf("leaderboard:%d", limit)
	data, err := h.cache.GetOrSet(r.Context(), key, leaderboardCacheTTL, func() ([]byte, error) {
		entries, err := h.leaderboard.Top(r.Context(), limit)
		if err != nil {
			return nil, err
		}
		rows := make([]leaderboardRow, len(entries))
		for i, entry := range entries {
			rows[i] = leaderboardRow{Username: entry.Username, Balance: entry.Balance}
		}
		return json.Marshal(rows)
	})
	if err != nil {
		log.Printf("[EconomyHandler] Error fetching leaderboard: %v", err)
		response.Error(w, apierror.InternalError("Failed to fetch leaderboard data"))
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	response.Raw(w, data)
}

// balanceResponse is the wire shape of the user balance endpoint. Username is
// null when no display name was ever recorded.
type balanceResponse struct {
	UserID   string  `json:"userId"`
	Username *string `json:"username"`
	Balance  int64   `json:"balance"`
}

// GetUserBalance handles GET /api/user/{userID}/balance
func (h *EconomyHandler) GetUserBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !userIDPattern.MatchString(userID) {
		response.Error(w, apierror.BadRequest("Invalid user ID format"))
		return
	}

	key := "balance:" + userID
	data, err := h.cache.GetOrSet(r.Context(), key, balanceCacheTTL, func() ([]byte, error) {
		resp := balanceResponse{UserID: userID}

		// Lookup failures degrade to balance 0 / null username rather than
		// failing the request.
		if balance, err := h.ledger.GetBalance(r.Context(), userID); err == nil {
			resp.Balance = balance
		} else {
			log.Printf("[EconomyHandler] Error retrieving balance for %s: %v", userID, err)
		}
		if username, err := h.ledger.GetUsername(r.Context(), userID); err == nil && username != "" {
			resp.Username = &username
		}

		return json.Marshal(resp)
	})
	if err != nil {
		log.Printf("[EconomyHandler] Error fetching user balance: %v", err)
		response.Error(w, apierror.InternalError("Failed to fetch user balance"))
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=30")
	response.Raw(w, data)
}
