package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	credentialBucket = "credentials"
	accessTokenKey   = "petstore_access_token"
	tokenLockTimeout = time.Second
)

// TokenFile is a TokenStore in its own bbolt file. The file is opened for each
// access and closed right after, so the lock is never held between calls:
// reads share it, writes take it for one transaction.
type TokenFile struct {
	path string
}

// NewTokenFile returns a token store at path. The file is created on first save.
func NewTokenFile(path string) (*TokenFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("token store requires a path")
	}
	return &TokenFile{path: path}, nil
}

// Path is the backing file.
func (f *TokenFile) Path() string { return f.path }

// SaveToken stores the bearer token, replacing any previous one.
// The value layout is the 8-byte expiry (zero for none) followed by the token text.
func (f *TokenFile) SaveToken(tok Token) error {
	if tok.Value == "" {
		return fmt.Errorf("token must not be empty")
	}
	return f.update(func(bucket *bolt.Bucket) error {
		expiry := make([]byte, expiryValueBytes)
		if !tok.ExpiresAt.IsZero() {
			expiry = encodeExpiry(tok.ExpiresAt)
		}
		return bucket.Put([]byte(accessTokenKey), append(expiry, tok.Value...))
	})
}

// LoadToken returns the stored bearer token, or ErrNoToken when none was saved.
func (f *TokenFile) LoadToken() (Token, error) {
	db, err := bolt.Open(f.path, 0o600, &bolt.Options{Timeout: tokenLockTimeout, ReadOnly: true})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Token{}, ErrNoToken
		}
		return Token{}, fmt.Errorf("open token store: %w", err)
	}
	defer db.Close()

	var tok Token
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return ErrNoToken
		}
		value := bucket.Get([]byte(accessTokenKey))
		if len(value) <= expiryValueBytes {
			return ErrNoToken
		}
		if expiry, ok := decodeExpiry(value[:expiryValueBytes]); ok {
			tok.ExpiresAt = expiry
		}
		tok.Value = string(value[expiryValueBytes:])
		return nil
	})
	return tok, err
}

// ClearToken removes the stored bearer token.
func (f *TokenFile) ClearToken() error {
	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return f.update(func(bucket *bolt.Bucket) error {
		return bucket.Delete([]byte(accessTokenKey))
	})
}

func (f *TokenFile) update(fn func(*bolt.Bucket) error) error {
	if err := ensureDir(f.path); err != nil {
		return err
	}
	db, err := bolt.Open(f.path, 0o600, &bolt.Options{Timeout: tokenLockTimeout})
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		if err != nil {
			return err
		}
		return fn(bucket)
	})
}
