package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectboard/internal/domain/repositories"
	"projectboard/internal/repository/memory"
	"projectboard/internal/service"
	"projectboard/internal/service/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingTx runs fn directly and reports whether it was used
type recordingTx struct {
	calls int
	err   error
}

func (tx *recordingTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.err
}

func newSeeder(tx repositories.TransactionManager) (*Seeder, *memory.ProjectRepository, *memory.SkillRepository) {
	projects := memory.NewProjectRepository()
	skills := memory.NewSkillRepository()
	logger := testLogger()
	seeder := NewSeeder(
		service.NewSkillService(skills, logger),
		service.NewProjectService(projects, auth.NewOwnerBasedAuthorizer(projects), logger),
		tx,
		logger,
	)
	return seeder, projects, skills
}

func TestLoad(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, data.Owner.Email)
	assert.Len(t, data.Skills, 16)
	require.Len(t, data.Projects, 2)
	for _, p := range data.Projects {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Skills)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("skills: [unterminated"))
	assert.Error(t, err)
}

func TestProjectInput_OptionalFields(t *testing.T) {
	in := Project{Title: "t", Description: "d", Skills: []string{"Go"}, Location: "Lab 3", ContactName: "Priya"}.Input()
	assert.Nil(t, in.ContactMethod)
	require.NotNil(t, in.ContactName)
	assert.Equal(t, "Priya", *in.ContactName)
	assert.Nil(t, in.CollaborationPreference)
	require.NotNil(t, in.Location)
	assert.Equal(t, "Lab 3", *in.Location)
}

func TestRun_Idempotent(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	tx := &recordingTx{}
	seeder, projects, skills := newSeeder(tx)
	ctx := context.Background()

	first, err := seeder.Run(ctx, data, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, len(data.Skills), first.SkillsCreated)
	assert.Equal(t, len(data.Projects), first.ProjectsCreated)
	assert.Equal(t, 1, tx.calls)

	second, err := seeder.Run(ctx, data, "owner-1")
	require.NoError(t, err)
	assert.Zero(t, second.SkillsCreated)
	assert.Equal(t, len(data.Skills), second.SkillsSkipped)
	assert.Zero(t, second.ProjectsCreated)
	assert.Equal(t, len(data.Projects), second.ProjectsSkipped)

	assert.Equal(t, len(data.Skills), skills.Len())
	assert.Equal(t, len(data.Projects), projects.Len())
}

func TestRun_OtherOwnerGetsOwnCopies(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	seeder, projects, _ := newSeeder(nil)
	ctx := context.Background()

	_, err = seeder.Run(ctx, data, "owner-1")
	require.NoError(t, err)
	result, err := seeder.Run(ctx, data, "owner-2")
	require.NoError(t, err)

	assert.Equal(t, len(data.Projects), result.ProjectsCreated)
	assert.Equal(t, 2*len(data.Projects), projects.Len())
}

func TestRun_TransactionFailure(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	tx := &recordingTx{err: errors.New("commit failed")}
	seeder, _, _ := newSeeder(tx)

	result, err := seeder.Run(context.Background(), data, "owner-1")
	require.Error(t, err)
	assert.Zero(t, result.ProjectsCreated)
	assert.Equal(t, len(data.Skills), result.SkillsCreated)
}

func TestRun_InvalidProject(t *testing.T) {
	seeder, _, _ := newSeeder(nil)
	data := &Data{Projects: []Project{{Title: "No skills", Description: "d"}}}

	_, err := seeder.Run(context.Background(), data, "owner-1")
	assert.Error(t, err)
}

type fakeAdmin struct {
	users   map[string]string
	deleted []string
	err     error
}

func (a *fakeAdmin) EnsureUser(_ context.Context, email, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if id, ok := a.users[email]; ok {
		return id, nil
	}
	id := "user-" + email
	a.users[email] = id
	return id, nil
}

func (a *fakeAdmin) DeleteUserByEmail(_ context.Context, email string) error {
	if a.err != nil {
		return a.err
	}
	delete(a.users, email)
	a.deleted = append(a.deleted, email)
	return nil
}

func TestOwnerLifecycle(t *testing.T) {
	ctx := context.Background()
	admin := &fakeAdmin{users: map[string]string{}}
	owner := Owner{Email: "demo@example.com", Password: "secret"}

	id, err := EnsureOwner(ctx, admin, owner)
	require.NoError(t, err)
	again, err := EnsureOwner(ctx, admin, owner)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	require.NoError(t, RemoveOwner(ctx, admin, owner))
	assert.Equal(t, []string{"demo@example.com"}, admin.deleted)
	assert.Empty(t, admin.users)

	require.NoError(t, RemoveOwner(ctx, admin, Owner{}))
	assert.Len(t, admin.deleted, 1)

	_, err = EnsureOwner(ctx, admin, Owner{})
	assert.Error(t, err)

	admin.err = errors.New("auth admin unavailable")
	err = RemoveOwner(ctx, admin, owner)
	require.ErrorIs(t, err, admin.err)
	assert.Contains(t, err.Error(), "remove owner demo@example.com")
}
