package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"theagency-bot/internal/cache"
	"theagency-bot/internal/economy"
	"theagency-bot/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEconomyHandler(t *testing.T) (*EconomyHandler, *economy.Ledger) {
	t.Helper()
	st := store.NewMemoryStore()
	ledger := economy.NewLedger(st)
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	return NewEconomyHandler(ledger, economy.NewLeaderboard(st), c), ledger
}

func serveLeaderboard(h *EconomyHandler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.GetLeaderboard(rec, req)
	return rec
}

func serveBalance(h *EconomyHandler, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/user/"+userID+"/balance", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.GetUserBalance(rec, req)
	return rec
}

func TestGetLeaderboardReturnsRankedRows(t *testing.T) {
	ctx := context.Background()
	h, ledger := newTestEconomyHandler(t)

	require.NoError(t, ledger.SetBalance(ctx, "111111111111111111", 900))
	require.NoError(t, ledger.StoreUsername(ctx, "111111111111111111", "GoldKing"))
	require.NoError(t, ledger.SetBalance(ctx, "222222222222222222", 500))

	rec := serveLeaderboard(h, "/api/leaderboard?limit=10")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "GoldKing", rows[0]["username"])
	assert.Equal(t, float64(900), rows[0]["balance"])
	// User IDs are never exposed on the leaderboard.
	assert.NotContains(t, rows[0], "userId")
}

func TestGetLeaderboardLimitValidation(t *testing.T) {
	h, _ := newTestEconomyHandler(t)

	for _, target := range []string{
		"/api/leaderboard?limit=0",
		"/api/leaderboard?limit=101",
		"/api/leaderboard?limit=-3",
	} {
		rec := serveLeaderboard(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.JSONEq(t, `{"error":"Limit must be between 1 and 100"}`, rec.Body.String(), target)
	}
}

func TestGetLeaderboardNonNumericLimitFallsBackToDefault(t *testing.T) {
	h, _ := newTestEconomyHandler(t)

	rec := serveLeaderboard(h, "/api/leaderboard?limit=abc")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetUserBalance(t *testing.T) {
	ctx := context.Background()
	h, ledger := newTestEconomyHandler(t)

	require.NoError(t, ledger.SetBalance(ctx, "123456789012345678", 750))
	require.NoError(t, ledger.StoreUsername(ctx, "123456789012345678", "GoldKing"))

	rec := serveBalance(h, "123456789012345678")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=30", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"userId":"123456789012345678","username":"GoldKing","balance":750}`, rec.Body.String())
}

func TestGetUserBalanceUnknownUserIsZeroWithNullUsername(t *testing.T) {
	h, _ := newTestEconomyHandler(t)

	rec := serveBalance(h, "123456789012345678")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"123456789012345678","username":null,"balance":0}`, rec.Body.String())
}

func TestGetUserBalanceRejectsMalformedIDs(t *testing.T) {
	h, _ := newTestEconomyHandler(t)

	for _, userID := range []string{"abc", "12345", "123456789012345678901234", "123abc456789012345"} {
		rec := serveBalance(h, userID)
		assert.Equal(t, http.StatusBadRequest, rec.Code, userID)
		assert.JSONEq(t, `{"error":"Invalid user ID format"}`, rec.Body.String(), userID)
	}
}

func TestGetLeaderboardServesFromCache(t *testing.T) {
	ctx := context.Background()
	h, ledger := newTestEconomyHandler(t)

	require.NoError(t, ledger.SetBalance(ctx, "111111111111111111", 100))

	first := serveLeaderboard(h, "/api/leaderboard?limit=5")
	require.Equal(t, http.StatusOK, first.Code)

	// The cached payload is returned even after the underlying data changes.
	require.NoError(t, ledger.SetBalance(ctx, "111111111111111111", 999))
	second := serveLeaderboard(h, "/api/leaderboard?limit=5")
	assert.Equal(t, first.Body.String(), second.Body.String())
}
