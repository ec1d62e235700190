package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

// Store holds the authentication token and the cached user profile between
// invocations, the way a browser keeps them in localStorage. No expiry is
// tracked locally; an expired token is discovered by the next 401.
type Store interface {
	Token() (string, error)
	User() (*domain.User, error)
	Set(token string, user *domain.User) error
	SetRefreshToken(token string) error
	Clear() error
}

type fileSession struct {
	Token        string       `json:"token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *domain.User `json:"user,omitempty"`
}

// FileStore persists the session as a single JSON document under the user's
// config directory.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Token() (string, error) {
	sess, err := s.read()
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (s *FileStore) User() (*domain.User, error) {
	sess, err := s.read()
	if err != nil {
		return nil, err
	}
	return sess.User, nil
}

func (s *FileStore) Set(token string, user *domain.User) error {
	sess, err := s.read()
	if err != nil {
		sess = fileSession{}
	}
	sess.Token = token
	sess.User = user
	return s.write(sess)
}

func (s *FileStore) SetRefreshToken(token string) error {
	sess, err := s.read()
	if err != nil {
		sess = fileSession{}
	}
	sess.RefreshToken = token
	return s.write(sess)
}

// Clear drops the token, the refresh token and the cached profile together by
// removing the session file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *FileStore) read() (fileSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileSession{}, nil
		}
		return fileSession{}, fmt.Errorf("read session: %w", err)
	}
	var sess fileSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return fileSession{}, fmt.Errorf("parse session: %w", err)
	}
	return sess, nil
}

func (s *FileStore) write(sess fileSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
