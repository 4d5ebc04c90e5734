package triprepo_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/contracttest"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/couchtest"
	couchtriprepo "github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/triprepo"
	triprepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
)

func TestContract(t *testing.T) {
	contracttest.RunTripRepo(t, func(t *testing.T) (triprepoport.Repository, contracttest.CleanupFunc) {
		srv := httptest.NewServer(couchtest.NewStore())
		client := couchdb.NewClient(srv.URL, 5*time.Second)
		return couchtriprepo.NewRepo(client, "trips"), srv.Close
	})
}
