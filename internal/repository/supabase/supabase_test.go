package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/repository/postgres"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewClient(srv.URL+"/", "service-key", postgres.NewTableNames("test_"), logger)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresConfig(t *testing.T) {
	tables := postgres.NewTableNames("")
	_, err := NewClient("", "key", tables, slog.Default())
	assert.Error(t, err)
	_, err = NewClient("https://x.supabase.co", "", tables, slog.Default())
	assert.Error(t, err)
}

func TestSkillRepository_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/test_skills", r.URL.Path)
		assert.Equal(t, "name.asc", r.URL.Query().Get("order"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"1","name":"Go","created_at":"2025-01-01T00:00:00Z"}]`)
	})

	skills, err := NewSkillRepository(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
}

func TestSkillRepository_CreateDuplicate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"code":"23505","message":"duplicate key value violates unique constraint"}`)
	})

	err := NewSkillRepository(client).Create(context.Background(), &models.Skill{Name: "Go"})

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "skill", conflict.ResourceType)
	assert.Equal(t, "Go", conflict.ResourceKey)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestProjectRepository_Create(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/test_projects", r.URL.Path)

		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.NotContains(t, row, "id")
		assert.Equal(t, "discord", row["contact_method"])
		assert.Equal(t, "alice#1234", row["contact_info"])
		assert.Equal(t, "Alice", row["contact_name"])

		row["id"] = "11111111-1111-1111-1111-111111111111"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]any{row})
	})

	project := &models.Project{
		UserID:      "u1",
		Title:       "Study Group",
		Description: "Weekly ML reading",
		Skills:      []string{"Python"},
		Contact:     &models.Contact{Method: models.ContactDiscord, Info: "alice#1234"},
		ContactName: strPtr("Alice"),
		Status:      models.StatusActive,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, NewProjectRepository(client).Create(context.Background(), project))
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", project.ID)
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.abc", r.URL.Query().Get("id"))
		io.WriteString(w, `[]`)
	})

	_, err := NewProjectRepository(client).GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		io.WriteString(w, `[
			{"id":"2","user_id":"u1","title":"B","description":"d","skills":null,"status":"archived",
			 "archived_at":"2025-02-02T00:00:00Z","created_at":"2025-02-01T00:00:00Z","updated_at":"2025-02-02T00:00:00Z",
			 "contact_method":"email","contact_info":"b@example.com","contact_name":"Bea","collaboration_preference":"remote"},
			{"id":"1","user_id":"u2","title":"A","description":"d","skills":["Go"],"status":"active",
			 "created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}
		]`)
	})

	projects, err := NewProjectRepository(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "2", projects[0].ID)
	assert.True(t, projects[0].IsArchived())
	assert.NotNil(t, projects[0].ArchivedAt)
	assert.Equal(t, []string{}, projects[0].Skills)
	require.NotNil(t, projects[0].Contact)
	assert.Equal(t, models.ContactEmail, projects[0].Contact.Method)
	require.NotNil(t, projects[0].ContactName)
	assert.Equal(t, "Bea", *projects[0].ContactName)
	require.NotNil(t, projects[0].CollaborationPreference)
	assert.Equal(t, models.CollaborationRemote, *projects[0].CollaborationPreference)

	assert.Nil(t, projects[1].Contact)
}

func TestProjectRepository_UpdateScopedToOwner(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
		// no row matched the owner filter
		io.WriteString(w, `[]`)
	})

	project := &models.Project{ID: "p1", UserID: "u1", Title: "t", Description: "d", Skills: []string{"Go"}}
	err := NewProjectRepository(client).Update(context.Background(), project)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_UpdateStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "archived", patch["status"])
		assert.NotNil(t, patch["archived_at"])
		io.WriteString(w, `[{"id":"p1"}]`)
	})

	project := &models.Project{ID: "p1", UserID: "u1"}
	project.SetArchived(true, time.Now().UTC())
	require.NoError(t, NewProjectRepository(client).UpdateStatus(context.Background(), project))
}

func TestProjectRepository_Delete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
		io.WriteString(w, `[{"id":"p1"}]`)
	})

	require.NoError(t, NewProjectRepository(client).Delete(context.Background(), "p1", "u1"))
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "upstream exploded")
	})

	err := client.Ping(context.Background())
	var re *restError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Equal(t, "upstream exploded", re.Message)
}

func strPtr(s string) *string { return &s }
