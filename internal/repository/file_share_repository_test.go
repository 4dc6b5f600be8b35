package repository

import (
	"context"
	"sync"
	"testing"

	"go-file-share/internal/apperror"
	"go-file-share/internal/visibility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_CreateAndFind(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	file := createFile(t, r, "report.pdf", 42)

	found, err := r.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", found.Name)
	assert.Equal(t, 42, found.Risk)
	assert.Empty(t, found.Users)
	assert.Empty(t, found.Groups)

	byName, err := r.files.List(ctx, "report.pdf")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, file.ID, byName[0].ID)

	none, err := r.files.List(ctx, "missing.txt")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileShareRepository_ShareWithUser(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	file := createFile(t, r, "plan.doc", 5)
	user := createUser(t, r, "alice")

	updated, err := r.shares.ShareWithUser(ctx, file.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, updated.Users, 1)
	assert.Equal(t, "alice", updated.Users[0].Name)
	assert.Empty(t, updated.Groups)

	_, err = r.shares.ShareWithUser(ctx, file.ID, user.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	found, err := r.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Len(t, found.Users, 1, "a rejected duplicate must not add a row")
}

func TestFileShareRepository_ShareWithUser_MissingFileLeavesStoreUnchanged(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	user := createUser(t, r, "alice")

	_, err := r.shares.ShareWithUser(ctx, 999999, user.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	snap, err := r.shares.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.FileUsers)
}

func TestFileShareRepository_ShareWithGroup(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	file := createFile(t, r, "design.png", 70)
	group := createGroup(t, r, "designers")
	member := createUser(t, r, "bob")
	_, err := r.members.AddMember(ctx, group.ID, member.ID)
	require.NoError(t, err)

	updated, err := r.shares.ShareWithGroup(ctx, file.ID, group.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Users, "group shares never land in the user list")
	require.Len(t, updated.Groups, 1)
	assert.Equal(t, "designers", updated.Groups[0].Name)
	require.Len(t, updated.Groups[0].Users, 1)
	assert.Equal(t, "bob", updated.Groups[0].Users[0].Name)

	_, err = r.shares.ShareWithGroup(ctx, file.ID, group.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = r.shares.ShareWithGroup(ctx, file.ID, 31337)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestFileShareRepository_ResolveVisibility(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	a := createUser(t, r, "A")
	b := createUser(t, r, "B")
	g := createGroup(t, r, "G")
	_, err := r.members.AddMember(ctx, g.ID, b.ID)
	require.NoError(t, err)
	f := createFile(t, r, "F", 10)

	_, err = r.shares.ShareWithUser(ctx, f.ID, a.ID)
	require.NoError(t, err)
	_, err = r.shares.ShareWithGroup(ctx, f.ID, g.ID)
	require.NoError(t, err)

	set, err := visibility.NewResolver(r.shares).Resolve(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, set.Sorted())

	// A joins G too: still two viewers
	_, err = r.members.AddMember(ctx, g.ID, a.ID)
	require.NoError(t, err)
	set, err = visibility.NewResolver(r.shares).Resolve(ctx, f.ID)
	require.NoError(t, err)
	assert.Len(t, set, 2)

	_, err = visibility.NewResolver(r.shares).Resolve(ctx, 999999)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestFileShareRepository_Snapshot(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	a := createUser(t, r, "A")
	b := createUser(t, r, "B")
	g := createGroup(t, r, "G")
	_, err := r.members.AddMember(ctx, g.ID, b.ID)
	require.NoError(t, err)
	f := createFile(t, r, "F", 10)
	lonely := createFile(t, r, "lonely", 3)
	_, err = r.shares.ShareWithUser(ctx, f.ID, a.ID)
	require.NoError(t, err)
	_, err = r.shares.ShareWithGroup(ctx, f.ID, g.ID)
	require.NoError(t, err)

	snap, err := r.shares.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Files, 2)
	assert.Len(t, snap.Users, 2)
	assert.Len(t, snap.FileUsers, 1)
	assert.Len(t, snap.FileGroups, 1)
	assert.Len(t, snap.Memberships, 1)

	ranked, err := visibility.Rank(ctx, snap, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "F", ranked[0].Name)
	assert.Equal(t, []string{"A", "B"}, ranked[0].Viewers)
	assert.Equal(t, lonely.ID, ranked[1].FileID)
	assert.Empty(t, ranked[1].Viewers)
}

// 并发地重复执行 op，断言恰好一次成功，其余都是 Conflict
func assertOneWinner(t *testing.T, attempts int, op func() error) {
	t.Helper()
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = op()
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(apperror.FromStore(err, "share")))
	}
	assert.Equal(t, 1, successes)
}

func TestFileShareRepository_ShareWithUser_Concurrent(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	file := createFile(t, r, "race.txt", 1)
	user := createUser(t, r, "racer")

	assertOneWinner(t, 5, func() error {
		_, err := r.shares.ShareWithUser(ctx, file.ID, user.ID)
		return err
	})

	ids, err := r.shares.DirectUserIDs(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{user.ID}, ids)
}

func TestFileShareRepository_ShareWithGroup_Concurrent(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	file := createFile(t, r, "race.txt", 1)
	group := createGroup(t, r, "racers")

	assertOneWinner(t, 5, func() error {
		_, err := r.shares.ShareWithGroup(ctx, file.ID, group.ID)
		return err
	})

	ids, err := r.shares.GroupShareIDs(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{group.ID}, ids)
}
