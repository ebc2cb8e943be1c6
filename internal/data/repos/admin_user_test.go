package repos_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/data/repos/testutil"
	"github.com/regdesk/regdesk-backend/internal/domain"
)

func uniqueUsername(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

func TestAdminUserRepoUsernameOrEmailExists(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewAdminUserRepo(db, testutil.Logger(t))

	user := testutil.SeedAdminUser(t, ctx, tx, uniqueUsername("probe"), domain.RoleAdmin)

	exists, err := repo.UsernameOrEmailExists(ctx, tx, user.Username, "other@example.com", nil)
	if err != nil {
		t.Fatalf("exists by username: %v", err)
	}
	if !exists {
		t.Fatal("expected existing username to be found")
	}

	exists, err = repo.UsernameOrEmailExists(ctx, tx, "", user.Email, nil)
	if err != nil {
		t.Fatalf("exists by email: %v", err)
	}
	if !exists {
		t.Fatal("expected existing email to be found")
	}

	exists, err = repo.UsernameOrEmailExists(ctx, tx, user.Username, user.Email, testutil.PtrUUID(user.ID))
	if err != nil {
		t.Fatalf("exists with exception: %v", err)
	}
	if exists {
		t.Fatal("record excluded by exceptID must not count as a duplicate")
	}

	exists, err = repo.UsernameOrEmailExists(ctx, tx, uniqueUsername("ghost"), "ghost@example.com", nil)
	if err != nil {
		t.Fatalf("exists for unknown: %v", err)
	}
	if exists {
		t.Fatal("unknown username and email must not exist")
	}
}

func TestAdminUserRepoUpdateAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewAdminUserRepo(db, testutil.Logger(t))

	user := testutil.SeedAdminUser(t, ctx, tx, uniqueUsername("mutate"), domain.RoleAdmin)

	if err := repo.Update(ctx, tx, user.ID, map[string]any{
		"name": "Renamed",
		"role": domain.RoleSuperadmin,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Renamed" || rows[0].Role != domain.RoleSuperadmin {
		t.Fatalf("update not persisted: %+v", rows)
	}

	if err := repo.Delete(ctx, tx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, err = repo.GetByIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows after delete, got %d", len(rows))
	}
}

func TestAdminUserRepoCountByRole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewAdminUserRepo(db, testutil.Logger(t))

	before, err := repo.CountByRole(ctx, tx, domain.RoleSuperadmin)
	if err != nil {
		t.Fatalf("count baseline: %v", err)
	}

	testutil.SeedAdminUser(t, ctx, tx, uniqueUsername("root"), domain.RoleSuperadmin)

	after, err := repo.CountByRole(ctx, tx, domain.RoleSuperadmin)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after-before != 1 {
		t.Fatalf("expected superadmin count +1, got %d -> %d", before, after)
	}
}
