package repository

import (
	"context"
	"testing"

	"go-file-share/internal/model"
	"go-file-share/internal/testutil"

	"github.com/stretchr/testify/require"
)

type testRepos struct {
	users   *UserRepository
	groups  *GroupRepository
	members *GroupMemberRepository
	files   *FileRepository
	shares  *FileShareRepository
}

// --- Test Setup ---

func setupRepos(t *testing.T) testRepos {
	conn := testutil.NewDB(t)
	return testRepos{
		users:   NewUserRepository(conn),
		groups:  NewGroupRepository(conn),
		members: NewGroupMemberRepository(conn),
		files:   NewFileRepository(conn),
		shares:  NewFileShareRepository(conn),
	}
}

func createUser(t *testing.T, r testRepos, name string) *model.User {
	user := &model.User{Name: name}
	require.NoError(t, r.users.Create(context.Background(), user), "Failed to create test user %s", name)
	require.True(t, user.ID > 0)
	return user
}

func createGroup(t *testing.T, r testRepos, name string) *model.Group {
	group := &model.Group{Name: name}
	require.NoError(t, r.groups.Create(context.Background(), group), "Failed to create test group %s", name)
	require.True(t, group.ID > 0)
	return group
}

func createFile(t *testing.T, r testRepos, name string, risk int) *model.File {
	file := &model.File{Name: name, Risk: risk}
	require.NoError(t, r.files.Create(context.Background(), file), "Failed to create test file %s", name)
	require.True(t, file.ID > 0)
	return file
}
