package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"roveri/internal/models"
)

const (
	keyIdentity     = "identity"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SaveIdentity overwrites the persisted identity blob.
func (s *Store) SaveIdentity(id *models.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	return s.setKV("session", keyIdentity, string(data))
}

// LoadIdentity returns the persisted identity, or (nil, nil) when none
// is stored. A corrupt blob is treated as absent.
func (s *Store) LoadIdentity() (*models.Identity, error) {
	raw, err := s.getKV("session", keyIdentity)
	if errors.Is(err, ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var id models.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		_ = s.deleteKV("session", keyIdentity)
		return nil, nil
	}
	return &id, nil
}

func (s *Store) ClearIdentity() error {
	return s.deleteKV("session", keyIdentity)
}

// SaveTokens stores the credential pair. An empty refresh keeps the
// previously stored one (the refresh endpoint may rotate only access).
func (s *Store) SaveTokens(access, refresh string) error {
	if err := s.setKV("session", keyAccessToken, access); err != nil {
		return err
	}
	if refresh == "" {
		return nil
	}
	return s.setKV("session", keyRefreshToken, refresh)
}

// LoadTokens returns the stored pair; absent tokens come back empty.
func (s *Store) LoadTokens() (access, refresh string, err error) {
	access, err = s.getKV("session", keyAccessToken)
	if err != nil && !errors.Is(err, ErrNoRows) {
		return "", "", err
	}
	refresh, err = s.getKV("session", keyRefreshToken)
	if err != nil && !errors.Is(err, ErrNoRows) {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Store) ClearTokens() error {
	return s.deleteKV("session", keyAccessToken, keyRefreshToken)
}
