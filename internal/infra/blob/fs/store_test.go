package fs

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"staffportal/internal/blob/core"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	put, err := s.Put(ctx, "logos/a.png", strings.NewReader("abc"), core.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"filename": "a.png"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if put.Size != 3 || put.ETag == "" {
		t.Fatalf("unexpected info: %+v", put)
	}

	got, rc, err := s.Get(ctx, "logos/a.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, _ := io.ReadAll(rc)
	if string(data) != "abc" {
		t.Fatalf("content mismatch: %q", data)
	}
	if got.ContentType != "image/png" || got.Metadata["filename"] != "a.png" {
		t.Fatalf("sidecar not honored: %+v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if _, err := s.Put(ctx, "k", strings.NewReader("old"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "k", strings.NewReader("newer"), core.PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	info, err := s.Head(ctx, "k")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if info.Size != 5 {
		t.Fatalf("latest write must win, size %d", info.Size)
	}
}

func TestKeySanitization(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "  ", "/abs", "../escape", "a/../../b"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Errorf("key %q must be rejected", key)
		}
	}
}

func TestHeadMissing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = s.Head(context.Background(), "missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListWalksNestedKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"logos/2024/a.png", "logos/b.png", "docs/c.txt"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := s.List(ctx, "logos/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "logos/2024/a.png" || infos[1].Key != "logos/b.png" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestPresignReturnsLocalURL(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	url, err := s.PresignURL(context.Background(), "logos/a.png", core.SignedURLOptions{})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.Contains(url, "logos/a.png") {
		t.Fatalf("unexpected url %s", url)
	}
	if _, err := s.PresignURL(context.Background(), "k", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("PUT presign must be unsupported, got %v", err)
	}
}
