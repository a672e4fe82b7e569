package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/cityreport/api-go/config"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put then get returns a copy of the bytes", func(t *testing.T) {
		t.Parallel()
		store := NewMemoryStore()
		data := []byte("jpeg")
		if err := store.Put(ctx, "k", "image/jpeg", data); err != nil {
			t.Fatal(err)
		}
		data[0] = 'X'

		got, ct, ok := store.Get("k")
		if !ok || string(got) != "jpeg" || ct != "image/jpeg" {
			t.Errorf("Get() = %q, %q, %v", got, ct, ok)
		}
	})

	t.Run("url only for stored keys", func(t *testing.T) {
		t.Parallel()
		store := NewMemoryStore()
		if _, err := store.URL(ctx, "missing"); !errors.Is(err, ErrPhotoNotFound) {
			t.Errorf("expected ErrPhotoNotFound, got %v", err)
		}
		_ = store.Put(ctx, "drafts/a.jpg", "image/jpeg", nil)
		if u, err := store.URL(ctx, "drafts/a.jpg"); err != nil || u != "memory://drafts/a.jpg" {
			t.Errorf("URL() = %q, %v", u, err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		store := NewMemoryStore()
		_ = store.Put(ctx, "k", "", []byte("x"))
		if err := store.Delete(ctx, "k"); err != nil {
			t.Fatal(err)
		}
		if err := store.Delete(ctx, "k"); err != nil {
			t.Errorf("second delete error = %v", err)
		}
		if store.Len() != 0 {
			t.Errorf("expected empty store, got %d objects", store.Len())
		}
	})
}

func TestDraftPhotoKey(t *testing.T) {
	t.Parallel()

	key := DraftPhotoKey("draft-1", "IMG_0001.JPG")
	pattern := regexp.MustCompile(`^drafts/draft-1/\d+_[0-9a-f-]{36}\.JPG$`)
	if !pattern.MatchString(key) {
		t.Errorf("unexpected key %q", key)
	}
	if DraftPhotoKey("draft-1", "a.png") == DraftPhotoKey("draft-1", "a.png") {
		t.Error("expected unique keys")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	if _, ok := New(config.R2Config{}).(*MemoryStore); !ok {
		t.Error("expected memory store without credentials")
	}
	r2 := config.R2Config{AccountID: "a", AccessKeyID: "k", SecretAccessKey: "s", BucketName: "b", Region: "auto"}
	if _, ok := New(r2).(*R2Store); !ok {
		t.Error("expected R2 store with credentials")
	}
}

func TestR2StorePublicURL(t *testing.T) {
	t.Parallel()

	store := NewR2Store(config.R2Config{
		AccountID: "a", AccessKeyID: "k", SecretAccessKey: "s",
		BucketName: "b", Region: "auto", PublicURL: "https://cdn.example.com",
	})
	u, err := store.URL(context.Background(), "drafts/x.jpg")
	if err != nil || u != "https://cdn.example.com/drafts/x.jpg" {
		t.Errorf("URL() = %q, %v", u, err)
	}
}
