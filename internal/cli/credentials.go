package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sangkips/ddms-api/internal/client"
)

// savedSession is what survives between console invocations.
type savedSession struct {
	User         client.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
}

// restoreSession installs the saved credentials into s. A missing file
// leaves s logged out.
func restoreSession(path string, s *client.Session) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	var saved savedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("decode session %s: %w", path, err)
	}
	if saved.Token == "" {
		return nil
	}
	s.SetAuth(saved.User, saved.Token, saved.RefreshToken)
	return nil
}

// persistSession writes the credentials of s, or removes the file when
// s is logged out.
func persistSession(path string, s *client.Session) error {
	user, ok := s.User()
	tok := s.Token()
	if !ok || tok == nil || tok.AccessToken == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}

	if store, ok := s.CurrentStore(); ok {
		user.CurrentStoreID = store.ID
	}
	data, err := json.MarshalIndent(savedSession{
		User:         user,
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
