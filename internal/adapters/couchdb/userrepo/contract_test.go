package userrepo_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/contracttest"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/couchtest"
	couchuserrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/userrepo"
	userrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

func TestContract(t *testing.T) {
	contracttest.RunUserRepo(t, func(t *testing.T) (userrepoport.Repository, contracttest.CleanupFunc) {
		srv := httptest.NewServer(couchtest.NewStore())
		client := couchdb.NewClient(srv.URL, 5*time.Second)
		return couchuserrepo.NewRepo(client, "users"), srv.Close
	})
}
