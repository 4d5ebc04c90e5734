package userrepo_test

import (
	"testing"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/contracttest"
	memuserrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/userrepo"
	userrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

func TestContract(t *testing.T) {
	contracttest.RunUserRepo(t, func(t *testing.T) (userrepoport.Repository, contracttest.CleanupFunc) {
		return memuserrepo.NewRepo(), nil
	})
}
