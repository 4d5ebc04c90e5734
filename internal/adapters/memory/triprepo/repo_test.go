package triprepo_test

import (
	"testing"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/contracttest"
	memtriprepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/triprepo"
	triprepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
)

func TestContract(t *testing.T) {
	contracttest.RunTripRepo(t, func(t *testing.T) (triprepoport.Repository, contracttest.CleanupFunc) {
		return memtriprepo.NewRepo(), nil
	})
}
