package infra

// storage.go — object storage for the two application buckets.
//
// Buckets:
//   activity-photos  — {user_id}/{uuid}-{prefix}.{ext}
//   user-documents   — {user_id}/{doc_type}/{uuid}-{filename}
//
// Paths are UUID-prefixed and scoped under the owner's user id, so they are
// not guessable and ownership can be checked from the path alone. Reads go
// through time-boxed HMAC-signed URLs (60s) redeemed at /v1/files.

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Bucket names.
const (
	BucketActivityPhotos = "activity-photos"
	BucketUserDocuments  = "user-documents"
)

// SignedURLTTL is the lifetime of every signed URL handed to a client.
const SignedURLTTL = 60 * time.Second

var (
	ErrObjectNotFound   = errors.New("storage: object not found")
	ErrInvalidPath      = errors.New("storage: invalid path")
	ErrSignatureInvalid = errors.New("storage: signature invalid or expired")
)

// ObjectStore persists opaque blobs on the local filesystem and issues
// time-boxed signed URLs for reads.
type ObjectStore struct {
	root    string
	secret  []byte
	baseURL string
	now     func() time.Time
}

// NewObjectStore creates the store rooted at root. baseURL is the public
// prefix for signed URLs (e.g. https://api.example.com).
func NewObjectStore(root, secret, baseURL string) (*ObjectStore, error) {
	if secret == "" {
		return nil, errors.New("storage: empty signing secret")
	}
	for _, bucket := range []string{BucketActivityPhotos, BucketUserDocuments} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create bucket dir: %w", err)
		}
	}
	return &ObjectStore{
		root:    root,
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

// validPath rejects empty, absolute, and traversal paths.
func validPath(path string) bool {
	if path == "" || strings.HasPrefix(path, "/") {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	return clean == path && !strings.HasPrefix(clean, "..") && !strings.Contains(clean, "/../")
}

func (s *ObjectStore) objectFile(bucket, path string) (string, error) {
	if bucket != BucketActivityPhotos && bucket != BucketUserDocuments {
		return "", ErrInvalidPath
	}
	if !validPath(path) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(path)), nil
}

// Save writes an object, creating parent directories as needed.
func (s *ObjectStore) Save(bucket, path string, r io.Reader) error {
	file, err := s.objectFile(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(file)
		return err
	}
	return nil
}

// Delete removes an object. Deleting a missing object is not an error — the
// caller's intent (the object must not exist) is already satisfied.
func (s *ObjectStore) Delete(bucket, path string) error {
	file, err := s.objectFile(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Open returns a reader over the object. The caller must close it.
func (s *ObjectStore) Open(bucket, path string) (io.ReadCloser, error) {
	file, err := s.objectFile(bucket, path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *ObjectStore) sign(bucket, path string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s/%s:%d", bucket, path, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedURL issues a URL valid for SignedURLTTL.
func (s *ObjectStore) SignedURL(bucket, path string) (string, error) {
	if _, err := s.objectFile(bucket, path); err != nil {
		return "", err
	}
	exp := s.now().Add(SignedURLTTL).Unix()
	sig := s.sign(bucket, path, exp)
	return fmt.Sprintf("%s/v1/files/%s/%s?exp=%d&sig=%s", s.baseURL, bucket, path, exp, sig), nil
}

// VerifySignature checks the exp/sig pair for a bucket+path.
func (s *ObjectStore) VerifySignature(bucket, path, expStr, sig string) error {
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return ErrSignatureInvalid
	}
	if s.now().Unix() > exp {
		return ErrSignatureInvalid
	}
	want := s.sign(bucket, path, exp)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrSignatureInvalid
	}
	return nil
}

// OwnerOf extracts the user id segment that prefixes every object path.
func OwnerOf(path string) string {
	if idx := strings.Index(path, "/"); idx > 0 {
		return path[:idx]
	}
	return ""
}
