package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func openTestBolt(t *testing.T, opts Options) *boltStore {
	t.Helper()
	storeRaw, err := openBolt(t.TempDir()+"/petstore.db", normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreMarksAndExpiresPets(t *testing.T) {
	store := openTestBolt(t, Options{
		SeenTTL:         1 * time.Second,
		CleanupInterval: 1 * time.Second,
	})

	seen, err := store.SeenPet("pet:1:abc")
	if err != nil || seen {
		t.Fatalf("expected unseen pet, seen=%v err=%v", seen, err)
	}

	if err := store.MarkPet("pet:1:abc"); err != nil {
		t.Fatalf("MarkPet: %v", err)
	}

	seen, err = store.SeenPet("pet:1:abc")
	if err != nil || !seen {
		t.Fatalf("expected pet marked as seen, got seen=%v err=%v", seen, err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	seen, err = store.SeenPet("pet:1:abc")
	if err != nil {
		t.Fatalf("SeenPet after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func newTestTokenFile(t *testing.T, path string) *TokenFile {
	t.Helper()
	tokens, err := NewTokenFile(path)
	if err != nil {
		t.Fatalf("NewTokenFile: %v", err)
	}
	return tokens
}

func TestTokenFileRoundTrip(t *testing.T) {
	store := newTestTokenFile(t, filepath.Join(t.TempDir(), "nested", "token.db"))

	if _, err := store.LoadToken(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken on missing file: %v", err)
	}
	if err := store.SaveToken(Token{}); err == nil {
		t.Fatal("expected empty token to be rejected")
	}

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	if err := store.SaveToken(Token{Value: "opaque", ExpiresAt: exp}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	tok, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if tok.Value != "opaque" || !tok.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected token %+v", tok)
	}

	if err := store.SaveToken(Token{Value: "forever"}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	tok, err = store.LoadToken()
	if err != nil || tok.Value != "forever" || !tok.ExpiresAt.IsZero() {
		t.Fatalf("unexpected token %+v err=%v", tok, err)
	}

	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if _, err := store.LoadToken(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestNewTokenFileRequiresPath(t *testing.T) {
	if _, err := NewTokenFile("  "); err == nil {
		t.Fatal("expected error for empty token path")
	}
}

// One handle writes, another reads through TokenSource, as the CLI and the
// watcher do from separate processes.
func TestTokenSourceSeesRotationFromAnotherHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.db")
	writer := newTestTokenFile(t, path)
	source := TokenSource(newTestTokenFile(t, path), nil)

	if got := source(); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
	if err := writer.SaveToken(Token{Value: "first"}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got := source(); got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
	if err := writer.SaveToken(Token{Value: "second"}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got := source(); got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
	if err := writer.SaveToken(Token{Value: "stale", ExpiresAt: time.Now().Add(-time.Minute)}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got := source(); got != "" {
		t.Fatalf("expected expired token to be withheld, got %q", got)
	}
	if err := writer.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if got := source(); got != "" {
		t.Fatalf("expected cleared token, got %q", got)
	}
}

func TestTokenFileUnaffectedByOpenSeenStore(t *testing.T) {
	dir := t.TempDir()
	seen, err := NewStore("bbolt", filepath.Join(dir, "petstore.db"), Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { seen.Close() })

	tokens := newTestTokenFile(t, filepath.Join(dir, "petstore-token.db"))
	done := make(chan error, 1)
	go func() {
		if err := tokens.SaveToken(Token{Value: "shared"}); err != nil {
			done <- err
			return
		}
		_, err := tokens.LoadToken()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("token access while seen store open: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("token access blocked by open seen store")
	}
	if err := seen.MarkPet("pet:1:abc"); err != nil {
		t.Fatalf("MarkPet: %v", err)
	}
}

func TestNewTokenUsesJWTExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "petstore-user",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}

	tok := NewToken(signed, time.Minute)
	if !tok.ExpiresAt.Equal(exp) {
		t.Fatalf("expected jwt expiry %v, got %v", exp, tok.ExpiresAt)
	}

	opaque := NewToken("not-a-jwt", time.Minute)
	if opaque.ExpiresAt.IsZero() || opaque.ExpiresAt.After(time.Now().Add(time.Minute)) {
		t.Fatalf("expected ttl-based expiry, got %v", opaque.ExpiresAt)
	}

	if NewToken("plain", 0).Expired(time.Now().Add(100 * 365 * 24 * time.Hour)) {
		t.Fatal("token without expiry must never expire")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkPet("x"); err != nil {
		t.Fatalf("noop store MarkPet: %v", err)
	}
	if seen, err := store.SeenPet("x"); err != nil || seen {
		t.Fatalf("noop store SeenPet: seen=%v err=%v", seen, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatal("expected error for unsupported storage type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatal("expected error for empty bbolt path")
	}
}
