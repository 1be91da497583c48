package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"staffportal/internal/blob/core"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	info, err := s.Put(ctx, "logos/a.png", strings.NewReader("abc"), core.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"filename": "a.png"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 3 || info.ContentType != "image/png" {
		t.Fatalf("unexpected info: %+v", info)
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
	if got.Metadata["filename"] != "a.png" {
		t.Fatalf("metadata lost: %+v", got.Metadata)
	}
}

func TestPutOverwrites(t *testing.T) {
	s := New()
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

func TestGetMissing(t *testing.T) {
	s := New()
	_, _, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Put(ctx, "k", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, _ := s.Delete(ctx, "k"); !ok {
		t.Fatal("delete of existing key must report true")
	}
	if ok, _ := s.Delete(ctx, "k"); ok {
		t.Fatal("delete of missing key must report false")
	}
}

func TestListFiltersByPrefixSorted(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, key := range []string{"logos/b.png", "logos/a.png", "other/c.txt"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := s.List(ctx, "logos/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "logos/a.png" || infos[1].Key != "logos/b.png" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestPresignUnsupported(t *testing.T) {
	s := New()
	_, err := s.PresignURL(context.Background(), "k", core.SignedURLOptions{})
	if !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
