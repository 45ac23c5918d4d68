package board

import (
	"fmt"
	"io"
	"strings"

	"projectboard/pkg/client"
)

// Render writes the visible projects as text cards
func (b *Board) Render(w io.Writer) error {
	visible := b.Visible()

	if filters := b.SelectedSkills(); len(filters) > 0 {
		if _, err := fmt.Fprintf(w, "Filtering by: %s\n\n", strings.Join(filters, ", ")); err != nil {
			return err
		}
	}

	if len(visible) == 0 {
		msg := "No projects yet. Create the first one!"
		if len(b.projects) > 0 {
			msg = "No projects found matching your criteria. Try adjusting your filters or create a new project."
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	for _, p := range visible {
		if err := b.renderCard(w, p); err != nil {
			return err
		}
	}
	return nil
}

// RenderDetail writes one project card followed by the actions open to the viewer
func (b *Board) RenderDetail(w io.Writer, p client.Project) error {
	if err := b.renderCard(w, p); err != nil {
		return err
	}
	var hint string
	switch {
	case b.CanEdit(p) && p.Archived():
		hint = "You own this project: edit, unarchive or delete it."
	case b.CanEdit(p):
		hint = "You own this project: edit, archive or delete it."
	case b.viewerID == "":
		hint = "Sign in (--user) to post your own projects."
	default:
		hint = "Reach out to the owner to join."
	}
	_, err := fmt.Fprintln(w, hint)
	return err
}

func (b *Board) renderCard(w io.Writer, p client.Project) error {
	var sb strings.Builder

	sb.WriteString(p.Title)
	if p.Archived() {
		sb.WriteString(" [archived]")
	}
	if b.CanEdit(p) {
		sb.WriteString(" (yours)")
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "  id: %s\n", p.ID)
	fmt.Fprintf(&sb, "  %s\n", p.Description)
	fmt.Fprintf(&sb, "  skills: %s\n", strings.Join(p.Skills, ", "))
	if p.ContactMethod != "" {
		if p.ContactName != "" {
			fmt.Fprintf(&sb, "  contact (%s): %s, ask for %s\n", p.ContactMethod, p.ContactInfo, p.ContactName)
		} else {
			fmt.Fprintf(&sb, "  contact (%s): %s\n", p.ContactMethod, p.ContactInfo)
		}
	}
	for _, req := range p.IdealTeammate {
		fmt.Fprintf(&sb, "  looking for: %s\n", req)
	}
	if p.CollaborationPreference != "" {
		fmt.Fprintf(&sb, "  works: %s\n", strings.ReplaceAll(p.CollaborationPreference, "-", " "))
	}
	if p.Location != "" {
		fmt.Fprintf(&sb, "  location: %s\n", p.Location)
	}
	fmt.Fprintf(&sb, "  posted: %s\n\n", p.CreatedAt.Format("Jan 2, 2006"))

	_, err := io.WriteString(w, sb.String())
	return err
}
