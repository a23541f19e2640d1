package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"
)

func seedSession(sessionRepo *mockSessionRepository, confKey *domain.Key, id, name string) (*domain.Session, string) {
	s := &domain.Session{
		ID:           id,
		ConferenceID: confKey.ID,
		Name:         name,
		CreatedAt:    time.Now(),
	}
	sessionRepo.sessions[id] = s
	return s, domain.SessionKey(confKey, id).Websafe()
}

type wishlistFixture struct {
	svc         domain.WishlistService
	profileRepo *mockProfileRepository
	sessionRepo *mockSessionRepository
	confRepo    *mockConferenceRepository
	confKey     *domain.Key
}

func newWishlistFixture() *wishlistFixture {
	profileRepo := newMockProfileRepository()
	sessionRepo := newMockSessionRepository()
	confRepo := newMockConferenceRepository()
	conf := seedConference(confRepo, "org1", "c1", 10)
	return &wishlistFixture{
		svc:         NewWishlistService(profileRepo, sessionRepo, confRepo, 5*time.Second),
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		confRepo:    confRepo,
		confKey:     conf.Key(),
	}
}

func TestWishlistAdd(t *testing.T) {
	identity := domain.ProfileIdentity{UserID: "u1", Email: "u1@example.com"}

	t.Run("adds a session", func(t *testing.T) {
		f := newWishlistFixture()
		_, websafe := seedSession(f.sessionRepo, f.confKey, "s1", "Go Concurrency")

		added, err := f.svc.Add(context.Background(), identity, websafe)
		if err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		if !added {
			t.Error("Add() = false, want true")
		}
		if !f.profileRepo.profiles["u1"].Wishing(websafe) {
			t.Error("profile does not hold the session key")
		}
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		f := newWishlistFixture()
		_, websafe := seedSession(f.sessionRepo, f.confKey, "s1", "Go Concurrency")

		if _, err := f.svc.Add(context.Background(), identity, websafe); err != nil {
			t.Fatalf("first Add() error: %v", err)
		}
		_, err := f.svc.Add(context.Background(), identity, websafe)
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("second Add() error = %v, want ErrConflict", err)
		}
		if got := len(f.profileRepo.profiles["u1"].SessionKeysWishlist); got != 1 {
			t.Errorf("wishlist length = %d, want 1", got)
		}
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		f := newWishlistFixture()

		missing := domain.SessionKey(f.confKey, "nope").Websafe()
		_, err := f.svc.Add(context.Background(), identity, missing)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Add() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("non-canonical encoding of the same session is not found", func(t *testing.T) {
		f := newWishlistFixture()
		sess, websafe := seedSession(f.sessionRepo, f.confKey, "s1", "Go Concurrency")

		if _, err := f.svc.Add(context.Background(), identity, websafe); err != nil {
			t.Fatalf("Add() error: %v", err)
		}

		// A key parented under a forged conference path reaches the same
		// session row; accepting it would wishlist the session twice.
		alias := domain.SessionKey(domain.NewKey(domain.KindConference, "c1"), sess.ID).Websafe()
		_, err := f.svc.Add(context.Background(), identity, alias)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Add() with alias key error = %v, want ErrNotFound", err)
		}
		if got := len(f.profileRepo.profiles["u1"].SessionKeysWishlist); got != 1 {
			t.Errorf("wishlist length = %d, want 1", got)
		}
	})

	t.Run("conference key rejected as session key", func(t *testing.T) {
		f := newWishlistFixture()

		_, err := f.svc.Add(context.Background(), identity, f.confKey.Websafe())
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Add() error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestWishlistRemove(t *testing.T) {
	identity := domain.ProfileIdentity{UserID: "u1", Email: "u1@example.com"}

	t.Run("removes and allows re-add", func(t *testing.T) {
		f := newWishlistFixture()
		_, websafe := seedSession(f.sessionRepo, f.confKey, "s1", "Go Concurrency")

		if _, err := f.svc.Add(context.Background(), identity, websafe); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		removed, err := f.svc.Remove(context.Background(), identity, websafe)
		if err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		if !removed {
			t.Error("Remove() = false, want true")
		}
		added, err := f.svc.Add(context.Background(), identity, websafe)
		if err != nil || !added {
			t.Fatalf("re-Add() = %v, %v; want true, nil", added, err)
		}
	})

	t.Run("not wishlisted is a no-op", func(t *testing.T) {
		f := newWishlistFixture()
		_, websafe := seedSession(f.sessionRepo, f.confKey, "s1", "Go Concurrency")

		removed, err := f.svc.Remove(context.Background(), identity, websafe)
		if err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		if removed {
			t.Error("Remove() = true, want false")
		}
	})
}

func TestWishlistSessions(t *testing.T) {
	identity := domain.ProfileIdentity{UserID: "u1", Email: "u1@example.com"}

	f := newWishlistFixture()
	_, key1 := seedSession(f.sessionRepo, f.confKey, "s1", "Session One")
	_, key2 := seedSession(f.sessionRepo, f.confKey, "s2", "Session Two")

	for _, k := range []string{key2, key1} {
		if _, err := f.svc.Add(context.Background(), identity, k); err != nil {
			t.Fatalf("Add(%q) error: %v", k, err)
		}
	}

	sessions, err := f.svc.Sessions(context.Background(), identity)
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Sessions() length = %d, want 2", len(sessions))
	}
	// Wishlist order is preserved: s2 was added first.
	if sessions[0].ID != "s2" || sessions[1].ID != "s1" {
		t.Errorf("Sessions() order = [%s %s], want [s2 s1]", sessions[0].ID, sessions[1].ID)
	}
}

func TestWishlistSessionsSkipsUndecodableKeys(t *testing.T) {
	identity := domain.ProfileIdentity{UserID: "u1", Email: "u1@example.com"}

	f := newWishlistFixture()
	_, key1 := seedSession(f.sessionRepo, f.confKey, "s1", "Session One")

	if _, err := f.svc.Add(context.Background(), identity, key1); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	f.profileRepo.profiles["u1"].SessionKeysWishlist = append(
		f.profileRepo.profiles["u1"].SessionKeysWishlist, "!!garbage!!")

	sessions, err := f.svc.Sessions(context.Background(), identity)
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Errorf("Sessions() = %v, want just s1", sessions)
	}
}
