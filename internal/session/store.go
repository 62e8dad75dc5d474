package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fileFormat mirrors the browser client's persisted keys: "token" and
// "userdata".
type fileFormat struct {
	Token    string   `json:"token"`
	UserData *Profile `json:"userdata"`
}

// FileStore reads the session cache from a JSON file. A missing file is
// a guest session, not an error. The store never writes the file.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	token   string
	profile *Profile
}

// NewFileStore loads the session file at path. Returns an error only
// for a file that exists but cannot be parsed.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	s := &FileStore{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the session file, picking up a login or logout that
// happened since the last read.
func (s *FileStore) Reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.token, s.profile = "", nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse session file %s: %w", s.path, err)
	}

	token := f.Token
	if token != "" && tokenExpired(token) {
		s.logger.Info("session token expired, treating as guest")
		token = ""
	}

	s.mu.Lock()
	s.token = token
	s.profile = f.UserData
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *FileStore) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// tokenExpired inspects the JWT exp claim without verifying the
// signature; the widget has no signing secret and only needs to avoid
// sending a token the backend will reject anyway. An unparseable token
// is passed through untouched and left for the backend to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
