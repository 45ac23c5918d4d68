package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"projectboard/internal/board"
	"projectboard/pkg/client"
)

// stringList collects a repeatable flag
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type globalFlags struct {
	api    *string
	token  *string
	viewer *string
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "list":
		err = commandList(args)
	case "skills":
		err = commandSkills(args)
	case "show":
		err = commandShow(args)
	case "create":
		err = commandCreate(args)
	case "edit":
		err = commandEdit(args)
	case "archive":
		err = commandArchive(args, true)
	case "unarchive":
		err = commandArchive(args, false)
	case "delete":
		err = commandDelete(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func registerGlobal(fs *flag.FlagSet) globalFlags {
	return globalFlags{
		api:    fs.String("api", os.Getenv("PROJECTBOARD_API"), "API base URL (default http://localhost:4000)"),
		token:  fs.String("token", os.Getenv("PROJECTBOARD_TOKEN"), "Supabase access token"),
		viewer: fs.String("user", os.Getenv("PROJECTBOARD_USER"), "Your user id"),
	}
}

func openBoard(g globalFlags) (*board.Board, error) {
	cli, err := client.New(*g.api, client.WithToken(*g.token))
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return board.New(cli, strings.TrimSpace(*g.viewer), logger), nil
}

func requireViewer(b *board.Board) error {
	if b.ViewerID() == "" {
		return errors.New("--user (or PROJECTBOARD_USER) is required")
	}
	return nil
}

func commandList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	g := registerGlobal(fs)
	var skills stringList
	fs.Var(&skills, "skill", "Show projects with this skill (repeatable)")
	archived := fs.Bool("archived", false, "Include archived projects")
	fs.Parse(args)

	b, err := openBoard(g)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := b.Refresh(ctx); err != nil {
		return err
	}

	for _, s := range skills {
		b.ToggleSkill(strings.TrimSpace(s))
	}
	b.ShowArchived = *archived
	return b.Render(os.Stdout)
}

func commandSkills(args []string) error {
	fs := flag.NewFlagSet("skills", flag.ExitOnError)
	g := registerGlobal(fs)
	add := fs.String("add", "", "Create a new skill with this name")
	fs.Parse(args)

	cli, err := client.New(*g.api, client.WithToken(*g.token))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if name := strings.TrimSpace(*add); name != "" {
		skill, err := cli.CreateSkill(ctx, name)
		if err != nil {
			return err
		}
		fmt.Printf("added skill %s\n", skill.Name)
		return nil
	}

	b, err := openBoard(g)
	if err != nil {
		return err
	}
	if err := b.Refresh(ctx); err != nil {
		return err
	}
	for _, name := range b.Skills() {
		fmt.Println(name)
	}
	return nil
}

func commandCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	g := registerGlobal(fs)
	title := fs.String("title", "", "Project title")
	description := fs.String("description", "", "Project description")
	var skills, teammates stringList
	fs.Var(&skills, "skill", "Skill tag (repeatable)")
	fs.Var(&teammates, "teammate", "Ideal teammate requirement (repeatable, at most 5)")
	contactMethod := fs.String("contact-method", "", "email, phone or discord")
	contactInfo := fs.String("contact-info", "", "Contact details for the chosen method")
	contactName := fs.String("contact-name", "", "Who to ask for")
	collab := fs.String("collab", "", "remote, in-person or flexible")
	location := fs.String("location", "", "Where the team meets")
	fs.Parse(args)

	b, err := openBoard(g)
	if err != nil {
		return err
	}
	if err := requireViewer(b); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	project, err := b.Create(ctx, client.ProjectInput{
		Title:                   *title,
		Description:             *description,
		Skills:                  skills,
		ContactMethod:           *contactMethod,
		ContactInfo:             *contactInfo,
		ContactName:             *contactName,
		IdealTeammate:           teammates,
		CollaborationPreference: *collab,
		Location:                *location,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created project %s (%s)\n", project.ID, project.Title)
	return nil
}

func commandShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	g := registerGlobal(fs)
	id := fs.String("id", "", "Project id")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}
	b, err := openBoard(g)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	project, err := b.Show(ctx, *id)
	if err != nil {
		return err
	}
	return b.RenderDetail(os.Stdout, project)
}

// commandEdit loads the project and changes only the fields given as flags
func commandEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	g := registerGlobal(fs)
	id := fs.String("id", "", "Project id")
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	var skills, teammates stringList
	fs.Var(&skills, "skill", "Replace skills with these tags (repeatable)")
	fs.Var(&teammates, "teammate", "Replace ideal teammate requirements (repeatable, at most 5)")
	contactMethod := fs.String("contact-method", "", "email, phone or discord")
	contactInfo := fs.String("contact-info", "", "Contact details for the chosen method")
	contactName := fs.String("contact-name", "", "Who to ask for")
	collab := fs.String("collab", "", "remote, in-person or flexible")
	location := fs.String("location", "", "Where the team meets")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}
	b, err := openBoard(g)
	if err != nil {
		return err
	}
	if err := requireViewer(b); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	project, err := b.Edit(ctx, *id, func(in *client.ProjectInput) {
		overrideString(&in.Title, *title)
		overrideString(&in.Description, *description)
		overrideString(&in.ContactMethod, *contactMethod)
		overrideString(&in.ContactInfo, *contactInfo)
		overrideString(&in.ContactName, *contactName)
		overrideString(&in.CollaborationPreference, *collab)
		overrideString(&in.Location, *location)
		if len(skills) > 0 {
			in.Skills = skills
		}
		if len(teammates) > 0 {
			in.IdealTeammate = teammates
		}
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated project %s (%s)\n", project.ID, project.Title)
	return nil
}

func overrideString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

func commandArchive(args []string, archive bool) error {
	name := "unarchive"
	if archive {
		name = "archive"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	g := registerGlobal(fs)
	id := fs.String("id", "", "Project id")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}
	b, err := openBoard(g)
	if err != nil {
		return err
	}
	if err := requireViewer(b); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	project, err := b.Archive(ctx, *id, archive)
	if err != nil {
		return err
	}
	fmt.Printf("project %s is now %s\n", project.ID, project.Status)
	return nil
}

func commandDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	g := registerGlobal(fs)
	id := fs.String("id", "", "Project id")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}
	b, err := openBoard(g)
	if err != nil {
		return err
	}
	if err := requireViewer(b); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := b.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted project %s\n", *id)
	return nil
}

func printUsage() {
	fmt.Println(`board <command> [flags]

Commands:
  list       List projects (--skill to filter, --archived to include archived)
  show       Show one project and what you can do with it (--id)
  skills     List skills, or --add NAME to create one
  create     Post a project (--title, --description, --skill ...)
  edit       Change fields of one of your projects (--id, then any create flag)
  archive    Archive one of your projects (--id)
  unarchive  Restore an archived project (--id)
  delete     Delete one of your projects (--id)

Common flags: --api URL, --token TOKEN, --user ID
(or PROJECTBOARD_API, PROJECTBOARD_TOKEN, PROJECTBOARD_USER)`)
}
