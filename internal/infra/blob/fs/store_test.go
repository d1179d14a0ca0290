package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"dentsync/internal/blob/core"
)

func TestFilesystemStorePutGetHeadDelete(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	info, err := store.Put(ctx, "patients/p1/documents/d1", strings.NewReader("xray bytes"), core.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"filename": "xray.png"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len("xray bytes")) || info.ContentType != "image/png" || info.ETag == "" {
		t.Fatalf("unexpected info: %+v", info)
	}

	got, rc, err := store.Get(ctx, "patients/p1/documents/d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil || string(body) != "xray bytes" {
		t.Fatalf("unexpected body %q err %v", body, err)
	}
	if got.Metadata["filename"] != "xray.png" {
		t.Fatalf("metadata lost: %+v", got.Metadata)
	}

	head, err := store.Head(ctx, "patients/p1/documents/d1")
	if err != nil || head.ETag != info.ETag {
		t.Fatalf("head mismatch: %+v err %v", head, err)
	}

	existed, err := store.Delete(ctx, "patients/p1/documents/d1")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = store.Delete(ctx, "patients/p1/documents/d1")
	if err != nil || existed {
		t.Fatalf("second delete must report not found, existed=%v err=%v", existed, err)
	}
}

func TestFilesystemStorePutIsCreateOnly(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Put(ctx, "k", strings.NewReader("a"), core.PutOptions{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("b"), core.PutOptions{}); err == nil {
		t.Fatalf("second put on same key must fail")
	}
}

func TestFilesystemStoreRejectsTraversalKeys(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "  ", "../escape", "/absolute", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("key %q must be rejected", key)
		}
	}
}

func TestFilesystemStoreListFiltersByPrefix(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"patients/p1/documents/d2", "patients/p1/documents/d1", "reports/r1.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	infos, err := store.List(ctx, "patients/p1/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(infos))
	}
	if infos[0].Key != "patients/p1/documents/d1" || infos[1].Key != "patients/p1/documents/d2" {
		t.Fatalf("list must sort by key ascending: %+v", infos)
	}
}

func TestFilesystemStorePresignOnlySupportsGet(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	url, err := store.PresignURL(ctx, "k", core.SignedURLOptions{})
	if err != nil || url == "" {
		t.Fatalf("get presign: %q err %v", url, err)
	}
	if _, err := store.PresignURL(ctx, "k", core.SignedURLOptions{Method: "PUT"}); err != core.ErrUnsupported {
		t.Fatalf("put presign must be unsupported, got %v", err)
	}
}
