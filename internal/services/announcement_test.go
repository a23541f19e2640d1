package services

import (
	"context"
	"testing"
	"time"
)

func TestAnnouncementRefresh(t *testing.T) {
	t.Run("builds the message from nearly sold out conferences", func(t *testing.T) {
		confRepo := newMockConferenceRepository()
		cache := &mockAnnouncementCache{}
		a := seedConference(confRepo, "org1", "c1", 3)
		a.Name = "Alpha Conf"
		b := seedConference(confRepo, "org1", "c2", 100)
		b.Name = "Big Conf"
		svc := NewAnnouncementService(confRepo, cache, 5*time.Second)

		msg, err := svc.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh() error: %v", err)
		}
		want := "Last chance to attend! The following conferences are nearly sold out: Alpha Conf"
		if msg != want {
			t.Errorf("Refresh() = %q, want %q", msg, want)
		}
		if cache.message != want {
			t.Errorf("cached message = %q, want %q", cache.message, want)
		}
	})

	t.Run("sold out conferences do not qualify", func(t *testing.T) {
		confRepo := newMockConferenceRepository()
		cache := &mockAnnouncementCache{}
		soldOut := seedConference(confRepo, "org1", "c1", 0)
		soldOut.Name = "Gone Conf"
		svc := NewAnnouncementService(confRepo, cache, 5*time.Second)

		msg, err := svc.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh() error: %v", err)
		}
		if msg != "" {
			t.Errorf("Refresh() = %q, want empty", msg)
		}
	})

	t.Run("clears the cache when nothing qualifies", func(t *testing.T) {
		confRepo := newMockConferenceRepository()
		cache := &mockAnnouncementCache{message: "stale announcement", set: true}
		svc := NewAnnouncementService(confRepo, cache, 5*time.Second)

		msg, err := svc.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh() error: %v", err)
		}
		if msg != "" {
			t.Errorf("Refresh() = %q, want empty", msg)
		}
		if cache.set || cache.message != "" {
			t.Errorf("cache not cleared: message=%q set=%v", cache.message, cache.set)
		}
	})
}

func TestGetAnnouncement(t *testing.T) {
	confRepo := newMockConferenceRepository()
	cache := &mockAnnouncementCache{message: "current announcement"}
	svc := NewAnnouncementService(confRepo, cache, 5*time.Second)

	msg, err := svc.GetAnnouncement(context.Background())
	if err != nil {
		t.Fatalf("GetAnnouncement() error: %v", err)
	}
	if msg != "current announcement" {
		t.Errorf("GetAnnouncement() = %q, want %q", msg, "current announcement")
	}

	// The read path never recomputes, even with qualifying conferences around.
	c := seedConference(confRepo, "org1", "c1", 1)
	c.Name = "Nearly Gone"
	msg, err = svc.GetAnnouncement(context.Background())
	if err != nil {
		t.Fatalf("GetAnnouncement() error: %v", err)
	}
	if msg != "current announcement" {
		t.Errorf("GetAnnouncement() = %q, want unchanged cache value", msg)
	}
}
