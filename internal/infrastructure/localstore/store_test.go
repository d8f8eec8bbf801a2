package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmptyStoreReadsCleanly(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	token, err := s.Token()
	if err != nil || token != "" {
		t.Fatalf("Token() = %q, %v; want empty and no error", token, err)
	}
	favs, err := s.Favorites()
	if err != nil || len(favs) != 0 {
		t.Fatalf("Favorites() = %v, %v; want empty and no error", favs, err)
	}
}

func TestTokenRoundTripAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s1.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	// A fresh store over the same directory sees the token, like a new
	// browser tab sharing localStorage.
	s2, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	token, err := s2.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token)
	}

	if err := s2.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	token, _ = s1.Token()
	if token != "" {
		t.Fatalf("token after clear = %q, want empty", token)
	}
}

func TestFavoritesSurviveTokenWrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.SetFavorites([]string{"c1", "c2"}); err != nil {
		t.Fatalf("SetFavorites: %v", err)
	}
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}

	favs, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 2 || favs[0] != "c1" || favs[1] != "c2" {
		t.Fatalf("favorites = %v, want [c1 c2] in insertion order", favs)
	}
}

func TestCorruptStateFileReportsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt state: %v", err)
	}

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Token(); err == nil {
		t.Fatal("a corrupt state file should surface a read error")
	}
}
