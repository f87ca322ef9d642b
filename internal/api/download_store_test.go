package api

import (
	"bytes"
	"testing"
	"time"
)

func TestDownloadStorePutGet(t *testing.T) {
	s := newDownloadStore()

	token := s.put([]byte("결과물"), "out.xlsx", "application/zip", time.Minute)
	if token == "" {
		t.Fatalf("empty token")
	}

	d, ok := s.get(token)
	if !ok {
		t.Fatalf("token not found")
	}
	if !bytes.Equal(d.data, []byte("결과물")) || d.filename != "out.xlsx" {
		t.Fatalf("download=%+v", d)
	}

	if _, ok := s.get("없는토큰"); ok {
		t.Fatalf("unknown token must miss")
	}
}

func TestDownloadStoreExpiry(t *testing.T) {
	s := newDownloadStore()

	token := s.put([]byte("곧 만료"), "a.json", "application/json", -time.Second)
	if _, ok := s.get(token); ok {
		t.Fatalf("expired entry must not be served")
	}
	if len(s.items) != 0 {
		t.Fatalf("expired entry must be purged, items=%d", len(s.items))
	}
}

func TestNewRandomTokenUnique(t *testing.T) {
	a := newRandomToken(24)
	b := newRandomToken(24)
	if a == "" || a == b {
		t.Fatalf("tokens must be non-empty and distinct: %q %q", a, b)
	}
}
