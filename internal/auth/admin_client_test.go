package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdminAPI serves a tiny in-memory version of /auth/v1/admin/users
func fakeAdminAPI(t *testing.T, users map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		resp := ListUsersResponse{}
		for email, id := range users {
			resp.Users = append(resp.Users, User{ID: id, Email: email})
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("POST /auth/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.EmailConfirm)
		users[req.Email] = "created-id"
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(User{ID: "created-id", Email: req.Email})
	})
	mux.HandleFunc("DELETE /auth/v1/admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		for email, id := range users {
			if id == r.PathValue("id") {
				delete(users, email)
			}
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "{}")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAdminClient_EnsureUser(t *testing.T) {
	users := map[string]string{"existing@example.com": "existing-id"}
	srv := fakeAdminAPI(t, users)
	client := NewAdminClient(srv.URL+"/", "service-key")
	ctx := context.Background()

	id, err := client.EnsureUser(ctx, "EXISTING@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "existing-id", id)

	id, err = client.EnsureUser(ctx, "new@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "created-id", id)
	assert.Contains(t, users, "new@example.com")
}

func TestAdminClient_DeleteUserByEmail(t *testing.T) {
	users := map[string]string{"gone@example.com": "gone-id"}
	srv := fakeAdminAPI(t, users)
	client := NewAdminClient(srv.URL, "service-key")
	ctx := context.Background()

	require.NoError(t, client.DeleteUserByEmail(ctx, "gone@example.com"))
	assert.Empty(t, users)

	// missing users are not an error
	require.NoError(t, client.DeleteUserByEmail(ctx, "gone@example.com"))

	_, err := client.FindUserIDByEmail(ctx, "gone@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
