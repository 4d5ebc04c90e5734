package users_test

import (
	"context"
	"errors"
	"testing"

	memloginrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/loginrepo"
	memtriprepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/userrepo"
	"github.com/otdr-app/trip-tracker-api/internal/app/users"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

func newService(t *testing.T) (*users.Service, *memuserrepo.Repo, *memloginrepo.Repo, *memtriprepo.Repo) {
	t.Helper()
	usersRepo := memuserrepo.NewRepo()
	loginsRepo := memloginrepo.NewRepo()
	tripsRepo := memtriprepo.NewRepo()
	return users.NewService(usersRepo, loginsRepo, tripsRepo), usersRepo, loginsRepo, tripsRepo
}

func appError(t *testing.T, err error) *users.Error {
	t.Helper()
	var ae *users.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected app error, got %v", err)
	}
	return ae
}

func TestService_Create_WritesLoginThenUser(t *testing.T) {
	t.Parallel()

	svc, usersRepo, loginsRepo, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, users.CreateUserInput{
		ID: "alice", Name: "Alice", Email: "a@x.com", Phone: "555", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "alice" || len(created.Friends) != 0 {
		t.Fatalf("created=%+v", created)
	}

	login, err := loginsRepo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("login record missing: %v", err)
	}
	if login.Password != "pw" {
		t.Fatalf("login=%+v", login)
	}

	stored, err := usersRepo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("user record missing: %v", err)
	}
	if stored.Name != "Alice" || stored.Email != "a@x.com" || stored.Phone != "555" {
		t.Fatalf("stored=%+v", stored)
	}
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	ctx := context.Background()

	in := users.CreateUserInput{ID: "alice", Name: "Alice", Email: "a@x.com", Password: "pw"}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := svc.Create(ctx, in)
	ae := appError(t, err)
	if ae.Status != 409 || ae.Code != "USER_EXISTS" {
		t.Fatalf("unexpected error: %+v", ae)
	}
}

func TestService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, users.CreateUserInput{Name: "x", Email: "e", Password: "p"}); appError(t, err).Status != 400 {
		t.Fatalf("expected 400 for empty id")
	}
	if _, err := svc.Create(ctx, users.CreateUserInput{ID: "a", Email: "e", Password: "p"}); appError(t, err).Status != 422 {
		t.Fatalf("expected 422 for empty name")
	}
}

func TestService_Get_RepeatedReadsAgree(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, users.CreateUserInput{ID: "alice", Name: "Alice", Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get again: %v", err)
	}
	if first.Name != second.Name || first.Email != second.Email || first.Phone != second.Phone {
		t.Fatalf("reads disagree: %+v vs %+v", first, second)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	_, err := svc.Get(context.Background(), "nobody")
	ae := appError(t, err)
	if ae.Status != 404 || ae.Code != "USER_NOT_FOUND" {
		t.Fatalf("unexpected error: %+v", ae)
	}
}

func TestService_Find_EmptySelectorMatchesAll(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	ctx := context.Background()

	for _, id := range []domain.UserID{"alice", "bob"} {
		if _, err := svc.Create(ctx, users.CreateUserInput{ID: id, Name: "N", Email: string(id) + "@x.com", Password: "pw"}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	all, err := svc.Find(ctx, users.FindUsersInput{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}
	one, err := svc.Find(ctx, users.FindUsersInput{Email: "bob@x.com"})
	if err != nil {
		t.Fatalf("Find by email: %v", err)
	}
	if len(one) != 1 || one[0].ID != "bob" {
		t.Fatalf("unexpected result: %+v", one)
	}
}

func TestService_ListTripsForUser(t *testing.T) {
	t.Parallel()

	svc, _, _, tripsRepo := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, users.CreateUserInput{ID: "alice", Name: "Alice", Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	seed := []domain.Trip{
		{ID: "t1", Name: "Hike", CreatorID: "alice", ParticipantIDs: []domain.UserID{"alice"}, ReturnedIDs: []domain.UserID{}},
		{ID: "t2", Name: "Paddle", CreatorID: "bob", ParticipantIDs: []domain.UserID{"bob"}, ReturnedIDs: []domain.UserID{}},
	}
	for _, tr := range seed {
		if err := tripsRepo.Create(ctx, tr); err != nil {
			t.Fatalf("seed %s: %v", tr.ID, err)
		}
	}

	got, err := svc.ListTripsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTripsForUser: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("unexpected trips: %+v", got)
	}

	if _, err := svc.ListTripsForUser(ctx, "nobody"); appError(t, err).Status != 404 {
		t.Fatalf("expected 404 for unknown user")
	}
}
