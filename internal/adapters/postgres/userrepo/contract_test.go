package userrepo

import (
	"testing"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/contracttest"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/postgres/testutil"
	userrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

func TestContract_PostgresUserRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunUserRepo(t, func(t *testing.T) (userrepoport.Repository, contracttest.CleanupFunc) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
