package storage

import "errors"

const keyTheme = "theme"

func (s *Store) SaveTheme(name string) error {
	return s.setKV("preferences", keyTheme, name)
}

// LoadTheme returns the stored theme name, or "" when unset.
func (s *Store) LoadTheme() (string, error) {
	name, err := s.getKV("preferences", keyTheme)
	if errors.Is(err, ErrNoRows) {
		return "", nil
	}
	return name, err
}
