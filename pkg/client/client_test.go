package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_DefaultsBaseURL(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", c.baseURL)

	c, err = New("api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", c.baseURL)
}

func TestCreateProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["userId"])
		assert.NotContains(t, body, "location")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"p1","title":"Study","skills":["Go"],"user_id":"u1","status":"active","archived_at":null}`)
	}, WithToken(" tok "))

	project, err := c.CreateProject(context.Background(), ProjectInput{
		Title:       "Study",
		Description: "d",
		Skills:      []string{"Go"},
		OwnerID:     "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ID)
	assert.Equal(t, "u1", project.OwnerID)
	assert.False(t, project.Archived())
}

func TestGetProjectThenUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/p1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"id":"p1","title":"Study","description":"d","skills":["Go"],"user_id":"u1",`+
				`"contact_method":"email","contact_info":"u1@example.com","contact_name":"Ana",`+
				`"collaboration_preference":"in-person","status":"active"}`)
		case http.MethodPut:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Study Group", body["title"])
			assert.Equal(t, "Ana", body["contact_name"])
			assert.Equal(t, "in-person", body["collaboration_preference"])
			assert.NotContains(t, body, "ideal_teammate")
			io.WriteString(w, `{"id":"p1","title":"Study Group","skills":["Go"],"user_id":"u1","status":"active"}`)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	ctx := context.Background()
	project, err := c.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", project.ContactName)

	in := project.Input()
	in.Title = "Study Group"
	in.Skills[0] = "Golang"
	assert.Equal(t, []string{"Go"}, project.Skills, "input owns its slices")
	in.Skills = project.Skills

	updated, err := c.UpdateProject(ctx, "p1", in)
	require.NoError(t, err)
	assert.Equal(t, "Study Group", updated.Title)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"type":"forbidden","title":"Forbidden","status":403,"detail":"you can only modify your own projects"}`)
	})

	_, err := c.UpdateProject(context.Background(), "p1", ProjectInput{OwnerID: "u2"})

	var apiErr APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "you can only modify your own projects", apiErr.Message)
}

func TestAPIError_TitleFallback(t *testing.T) {
	assert.Equal(t, "Not Found", extractError(stringsReader(`{"title":"Not Found"}`)))
	assert.Equal(t, "plain text", extractError(stringsReader("plain text\n")))
	assert.Equal(t, "", extractError(stringsReader("")))
}

func TestDeleteProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/projects/p%201", r.URL.EscapedPath())

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["userId"])
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteProject(context.Background(), "p 1", "u1"))
}

func TestArchiveProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/projects/p1/archive", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["archive"])
		io.WriteString(w, `{"id":"p1","user_id":"u1","status":"archived","archived_at":"2025-01-01T00:00:00Z"}`)
	})

	project, err := c.ArchiveProject(context.Background(), "p1", "u1", true)
	require.NoError(t, err)
	assert.True(t, project.Archived())
	assert.NotNil(t, project.ArchivedAt)
}

func TestListSkillsAndHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/skills":
			io.WriteString(w, `["Go","Python"]`)
		case "/health":
			io.WriteString(w, `{"status":"ok","store":"connected"}`)
		default:
			http.NotFound(w, r)
		}
	})

	skills, err := c.ListSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Python"}, skills)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "connected", health.Store)
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
