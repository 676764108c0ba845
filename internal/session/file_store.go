package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltSize  = 16
	nonceSize = 24
)

var errSealedTooShort = errors.New("sealed state file too short")

// FileStore persists the session record as a single JSON file, the
// terminal-side analogue of browser local storage. When a passphrase is
// configured the file is sealed with secretbox under an HKDF-derived
// key, so a stolen state file does not leak the token.
//
// Two processes sharing one state file can race, same as two browser
// tabs sharing local storage. Not defended.
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase string
	rec        record
	logger     *zap.Logger

	now func() time.Time
}

func NewFileStore(path, passphrase string, logger *zap.Logger) *FileStore {
	s := &FileStore{
		path:       path,
		passphrase: passphrase,
		logger:     logger,
		now:        time.Now,
	}
	s.load()
	return s
}

// load reads the state file into memory. A missing or unreadable file
// is the logged-out state.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read session state file", zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	if s.passphrase != "" {
		data, err = s.open(data)
		if err != nil {
			s.logger.Warn("Failed to unseal session state file, treating as signed out",
				zap.String("path", s.path), zap.Error(err))
			return
		}
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("Corrupt session state file, treating as signed out",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	s.rec = rec
}

// persist writes the in-memory record back to disk. Write failures are
// logged and reported but the in-memory session stays usable.
func (s *FileStore) persist() error {
	data, err := json.Marshal(s.rec)
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		data, err = s.seal(data)
		if err != nil {
			return err
		}
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Error("Failed to write session state file", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}

func (s *FileStore) seal(plain []byte) ([]byte, error) {
	var salt [saltSize]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	key, err := s.deriveKey(salt[:])
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, key), nil
}

func (s *FileStore) open(sealed []byte) ([]byte, error) {
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, errSealedTooShort
	}
	key, err := s.deriveKey(sealed[:saltSize])
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])

	plain, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, errors.New("failed to open sealed state")
	}
	return plain, nil
}

func (s *FileStore) deriveKey(salt []byte) (*[32]byte, error) {
	h := hkdf.New(sha256.New, []byte(s.passphrase), salt, []byte("session-state"))
	var key [32]byte
	if _, err := io.ReadFull(h, key[:]); err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Token
}

func (s *FileStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.UserID
}

func (s *FileStore) LoginTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.loginTime()
}

func (s *FileStore) Organization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Organization
}

func (s *FileStore) SetSession(token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record{
		Token:     token,
		UserID:    userID,
		LoginTime: s.now().UnixMilli(),
	}
	return s.persist()
}

func (s *FileStore) SetOrganization(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Organization = name
	return s.persist()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to remove session state file", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}
