package users

import (
	"context"
	"testing"

	"github.com/dirauth/dirauth/pkg/config"
)

func seededStore() *ConfigStore {
	return NewConfigStore(&config.Config{
		Users: []config.User{
			{
				Name:        "admin",
				DisplayName: "Room Admin",
				Mail:        "admin@example.com",
				// "dogood"
				PassSHA256: "6478579e37aff45f013e14eeb30b3cc56c72ccdc310123bcdf53e0333e3f416a",
			},
			{
				Name:       "retired",
				PassSHA256: "6478579e37aff45f013e14eeb30b3cc56c72ccdc310123bcdf53e0333e3f416a",
				Disabled:   true,
			},
		},
	})
}

func TestFindByUsername(t *testing.T) {
	s := seededStore()

	u, err := s.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Name != "admin" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// lookups are case-insensitive
	u, err = s.FindByUsername(context.Background(), "ADMIN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil {
		t.Fatal("case-insensitive lookup failed")
	}

	u, err = s.FindByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected no user, got %+v", u)
	}
}

func TestFindReturnsCopy(t *testing.T) {
	s := seededStore()

	u, _ := s.FindByUsername(context.Background(), "admin")
	u.DisplayName = "Mutated"

	again, _ := s.FindByUsername(context.Background(), "admin")
	if again.DisplayName != "Room Admin" {
		t.Fatal("store handed out a shared pointer")
	}
}

func TestCreate(t *testing.T) {
	s := seededStore()

	created, err := s.Create(context.Background(), &User{
		Name:           ExternalNamePrefix + "alice",
		DisplayName:    "Alice A",
		Mail:           "alice@example.com",
		PasswordMarker: ExternalMarker,
		External:       true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "LDAP-alice" {
		t.Fatalf("unexpected name: %q", created.Name)
	}

	found, _ := s.FindByUsername(context.Background(), "LDAP-alice")
	if found == nil || !found.External {
		t.Fatalf("import not stored: %+v", found)
	}
}

func TestCreateRejectsDuplicatesAndEmpty(t *testing.T) {
	s := seededStore()

	if _, err := s.Create(context.Background(), &User{Name: "admin"}); err == nil {
		t.Fatal("expected a duplicate error")
	}
	if _, err := s.Create(context.Background(), &User{}); err == nil {
		t.Fatal("expected an error for an unnamed account")
	}
	if _, err := s.Create(context.Background(), nil); err == nil {
		t.Fatal("expected an error for a nil candidate")
	}
}

func TestAuthenticate(t *testing.T) {
	s := seededStore()

	u, err := s.Authenticate(context.Background(), "admin", "dogood")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil {
		t.Fatal("expected a match")
	}

	u, err = s.Authenticate(context.Background(), "admin", "wrong")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatal("wrong password authenticated")
	}

	u, _ = s.Authenticate(context.Background(), "retired", "dogood")
	if u != nil {
		t.Fatal("disabled account authenticated")
	}

	u, _ = s.Authenticate(context.Background(), "nobody", "dogood")
	if u != nil {
		t.Fatal("unknown account authenticated")
	}
}

func TestAuthenticateNeverMatchesExternal(t *testing.T) {
	s := seededStore()
	if _, err := s.Create(context.Background(), &User{
		Name:           ExternalNamePrefix + "alice",
		PasswordMarker: ExternalMarker,
		External:       true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := s.Authenticate(context.Background(), "LDAP-alice", ExternalMarker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatal("external account authenticated locally")
	}
}

func TestReseedKeepsImports(t *testing.T) {
	s := seededStore()
	if _, err := s.Create(context.Background(), &User{
		Name:           ExternalNamePrefix + "alice",
		PasswordMarker: ExternalMarker,
		External:       true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Reseed([]config.User{{Name: "newadmin"}})

	if u, _ := s.FindByUsername(context.Background(), "admin"); u != nil {
		t.Fatal("old seed survived the reseed")
	}
	if u, _ := s.FindByUsername(context.Background(), "newadmin"); u == nil {
		t.Fatal("new seed missing")
	}
	if u, _ := s.FindByUsername(context.Background(), "LDAP-alice"); u == nil {
		t.Fatal("imported account lost on reseed")
	}
}
