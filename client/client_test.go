package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyboard/platform/internal/domain"
)

func testServer(t *testing.T) (*httptest.Server, *map[string]string) {
	t.Helper()
	seenKeys := map[string]string{}

	r := chi.NewRouter()
	r.Post("/board/create", func(w http.ResponseWriter, r *http.Request) {
		var name string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&name))
		assert.Equal(t, "test-table", name)
		json.NewEncoder(w).Encode(domain.BoardKeys{Read: "r", Submit: "s", Admin: "a"})
	})
	r.Get("/board/{name}", func(w http.ResponseWriter, r *http.Request) {
		seenKeys["get"] = r.Header.Get("api-key")
		json.NewEncoder(w).Encode([]domain.ScoreRecord{{Player: "nertsal", Score: 10}})
	})
	r.Post("/board/{name}", func(w http.ResponseWriter, r *http.Request) {
		seenKeys["post"] = r.Header.Get("api-key")
		var rec domain.ScoreRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		assert.Equal(t, "nertsal", rec.Player)
		w.WriteHeader(http.StatusOK)
	})
	r.Delete("/board/{name}", func(w http.ResponseWriter, r *http.Request) {
		seenKeys["delete"] = r.Header.Get("api-key")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"code": "FORBIDDEN", "message": "admin authority required"})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &seenKeys
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	srv, seenKeys := testServer(t)

	t.Run("create board", func(t *testing.T) {
		c := New(srv.URL, "")
		keys, err := c.CreateBoard(ctx, "test-table")
		require.NoError(t, err)
		assert.Equal(t, &BoardKeys{Read: "r", Submit: "s", Admin: "a"}, keys)
	})

	t.Run("fetch scores sends the api key", func(t *testing.T) {
		c := New(srv.URL, "readkey")
		scores, err := c.FetchScores(ctx, "test-table")
		require.NoError(t, err)
		assert.Equal(t, []ScoreEntry{{Player: "nertsal", Score: 10}}, scores)
		assert.Equal(t, "readkey", (*seenKeys)["get"])
	})

	t.Run("submit score sends the api key", func(t *testing.T) {
		c := New(srv.URL, "submitkey")
		err := c.SubmitScore(ctx, "test-table", ScoreEntry{Player: "nertsal", Score: 10})
		require.NoError(t, err)
		assert.Equal(t, "submitkey", (*seenKeys)["post"])
	})

	t.Run("server errors surface with code and message", func(t *testing.T) {
		c := New(srv.URL, "readkey")
		err := c.DeleteBoard(ctx, "test-table")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FORBIDDEN")
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("board names are path-escaped", func(t *testing.T) {
		c := New(srv.URL, "")
		assert.Equal(t, "/board/has%20space", c.boardPath("has space"))
	})
}
