package models

import (
	"encoding/json"
	"time"
)

// ContactMethod is how interested students should reach a project owner
type ContactMethod string

const (
	ContactEmail   ContactMethod = "email"
	ContactPhone   ContactMethod = "phone"
	ContactDiscord ContactMethod = "discord"
)

// ContactMethods lists every accepted contact method
var ContactMethods = []ContactMethod{ContactEmail, ContactPhone, ContactDiscord}

// Valid reports whether m is one of ContactMethods
func (m ContactMethod) Valid() bool {
	for _, known := range ContactMethods {
		if m == known {
			return true
		}
	}
	return false
}

// CollaborationPreference describes where the team intends to work
type CollaborationPreference string

const (
	CollaborationRemote   CollaborationPreference = "remote"
	CollaborationInPerson CollaborationPreference = "in-person"
	CollaborationFlexible CollaborationPreference = "flexible"
)

// CollaborationPreferences lists every accepted collaboration preference
var CollaborationPreferences = []CollaborationPreference{
	CollaborationRemote,
	CollaborationInPerson,
	CollaborationFlexible,
}

// Valid reports whether p is one of CollaborationPreferences
func (p CollaborationPreference) Valid() bool {
	for _, known := range CollaborationPreferences {
		if p == known {
			return true
		}
	}
	return false
}

// ProjectStatus is the visibility state of a project
type ProjectStatus string

const (
	StatusActive   ProjectStatus = "active"
	StatusArchived ProjectStatus = "archived"
)

// MaxIdealTeammates caps the number of "ideal teammate" requirements on a project
const MaxIdealTeammates = 5

// Contact groups the method and info fields, which are always set together.
// A nil *Contact means the project has no contact details.
type Contact struct {
	Method ContactMethod
	Info   string
}

// ContactFromColumns rebuilds a Contact from the two nullable store columns.
// Returns nil unless both columns carry a value.
func ContactFromColumns(method, info *string) *Contact {
	if method == nil || info == nil || *method == "" {
		return nil
	}
	return &Contact{Method: ContactMethod(*method), Info: *info}
}

// Columns splits a Contact into the two nullable store columns
func (c *Contact) Columns() (method, info *string) {
	if c == nil {
		return nil, nil
	}
	m := string(c.Method)
	i := c.Info
	return &m, &i
}

// Project is a collaboration posting owned by the user who created it
type Project struct {
	ID                      string                   `json:"id"`
	UserID                  string                   `json:"user_id"`
	Title                   string                   `json:"title"`
	Description             string                   `json:"description"`
	Skills                  []string                 `json:"skills"`
	Contact                 *Contact                 `json:"-"`
	ContactName             *string                  `json:"contact_name,omitempty"`
	IdealTeammate           []string                 `json:"ideal_teammate,omitempty"`
	CollaborationPreference *CollaborationPreference `json:"collaboration_preference,omitempty"`
	Location                *string                  `json:"location,omitempty"`
	Status                  ProjectStatus            `json:"status"`
	ArchivedAt              *time.Time               `json:"archived_at"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

// IsOwnedBy reports whether userID created the project
func (p *Project) IsOwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}

// IsArchived reports whether the project is hidden from default views
func (p *Project) IsArchived() bool {
	return p.Status == StatusArchived
}

// SetArchived moves the project between active and archived.
// Status and ArchivedAt always change together.
func (p *Project) SetArchived(archived bool, now time.Time) {
	if archived {
		p.Status = StatusArchived
		p.ArchivedAt = &now
	} else {
		p.Status = StatusActive
		p.ArchivedAt = nil
	}
	p.UpdatedAt = now
}

// projectWire is the JSON shape of Project without its methods
type projectWire Project

// MarshalJSON flattens Contact into contact_method / contact_info
func (p Project) MarshalJSON() ([]byte, error) {
	method, info := p.Contact.Columns()
	return json.Marshal(struct {
		projectWire
		ContactMethod *string `json:"contact_method,omitempty"`
		ContactInfo   *string `json:"contact_info,omitempty"`
	}{
		projectWire:   projectWire(p),
		ContactMethod: method,
		ContactInfo:   info,
	})
}

// UnmarshalJSON reads contact_method / contact_info back into Contact
func (p *Project) UnmarshalJSON(data []byte) error {
	aux := struct {
		*projectWire
		ContactMethod *string `json:"contact_method"`
		ContactInfo   *string `json:"contact_info"`
	}{
		projectWire: (*projectWire)(p),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Contact = ContactFromColumns(aux.ContactMethod, aux.ContactInfo)
	return nil
}
