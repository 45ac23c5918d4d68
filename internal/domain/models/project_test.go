package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectJSON_FlattensContact(t *testing.T) {
	project := Project{
		ID:      "p1",
		UserID:  "u1",
		Title:   "Study Group",
		Skills:  []string{"Python"},
		Contact: &Contact{Method: ContactPhone, Info: "555-0100"},
		Status:  StatusActive,
	}

	data, err := json.Marshal(project)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "phone", raw["contact_method"])
	assert.Equal(t, "555-0100", raw["contact_info"])
	assert.NotContains(t, raw, "Contact")
	assert.NotContains(t, raw, "location")
	assert.Contains(t, raw, "archived_at")

	var decoded Project
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Contact)
	assert.Equal(t, ContactPhone, decoded.Contact.Method)
	assert.Equal(t, "u1", decoded.UserID)
}

func TestProjectJSON_NoContact(t *testing.T) {
	data, err := json.Marshal(Project{ID: "p1"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "contact_method")

	var decoded Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","contact_method":"email"}`), &decoded))
	assert.Nil(t, decoded.Contact, "method without info is not a contact")
}

func TestSetArchived(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	p := &Project{Status: StatusActive}

	p.SetArchived(true, now)
	assert.True(t, p.IsArchived())
	require.NotNil(t, p.ArchivedAt)
	assert.Equal(t, now, *p.ArchivedAt)

	p.SetArchived(false, now.Add(time.Hour))
	assert.False(t, p.IsArchived())
	assert.Nil(t, p.ArchivedAt)
	assert.Equal(t, now.Add(time.Hour), p.UpdatedAt)
}

func TestIsOwnedBy(t *testing.T) {
	p := &Project{UserID: "u1"}
	assert.True(t, p.IsOwnedBy("u1"))
	assert.False(t, p.IsOwnedBy("u2"))
	assert.False(t, (&Project{}).IsOwnedBy(""))
}

func TestEnumValid(t *testing.T) {
	assert.True(t, ContactDiscord.Valid())
	assert.False(t, ContactMethod("fax").Valid())
	assert.True(t, CollaborationInPerson.Valid())
	assert.False(t, CollaborationPreference("anywhere").Valid())
}
