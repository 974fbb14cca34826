package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	golly "oss.nandlabs.io/golly/config"
)

// Store is the persisted layer of SPEC_FULL.md §6.3's precedence
// chain: a flat JSON object of canonical keys at a fixed path
// (data/config.json by default), backed in memory by golly's
// MapAttributes. Set always writes the canonical key only — never the
// alias it was given — so Get can translate any alias back to the
// same value without the source-of-truth ever disagreeing with
// itself.
type Store struct {
	path  string
	attrs *golly.MapAttributes
}

// Open loads the config document at path, or starts from an empty one
// if it does not yet exist.
func Open(path string) (*Store, error) {
	attrs := golly.NewMapAttributes()
	attrs.ThreadSafe(true)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path, attrs: attrs}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(data) > 0 {
		raw := make(map[string]any)
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		for k, v := range raw {
			attrs.Set(k, v)
		}
	}
	return &Store{path: path, attrs: attrs}, nil
}

// Set resolves key (alias or canonical) to its canonical name, parses
// value according to that key's type, stores it and persists the
// document. It returns the canonical key and the parsed value so the
// caller (cli/cmd_config.go) can echo back a normalized confirmation.
func (s *Store) Set(key, value string) (canonical string, parsed any, err error) {
	canonical, ok := Canonicalize(key)
	if !ok {
		return "", nil, fmt.Errorf("config: unrecognized key %q", key)
	}
	switch {
	case isNumeric(canonical):
		n, perr := strconv.Atoi(value)
		if perr != nil {
			return "", nil, fmt.Errorf("config: %s requires an integer, got %q", key, value)
		}
		parsed = n
	case isDecimal(canonical):
		f, perr := strconv.ParseFloat(value, 64)
		if perr != nil {
			return "", nil, fmt.Errorf("config: %s requires a number, got %q", key, value)
		}
		parsed = f
	default:
		parsed = value
	}
	s.attrs.Set(canonical, parsed)
	if err := s.save(); err != nil {
		return "", nil, err
	}
	return canonical, parsed, nil
}

// Get resolves key to its canonical name and returns the persisted
// value, if any has been set via Set.
func (s *Store) Get(key string) (canonical string, value any, found bool, err error) {
	canonical, ok := Canonicalize(key)
	if !ok {
		return "", nil, false, fmt.Errorf("config: unrecognized key %q", key)
	}
	v := s.attrs.Get(canonical)
	return canonical, v, v != nil, nil
}

// All returns every persisted canonical key and value, for `config get`
// with no key argument.
func (s *Store) All() map[string]any {
	return s.attrs.AsMap()
}

func (s *Store) getInt(canonical string) (int, bool) {
	v := s.attrs.Get(canonical)
	if v == nil {
		return 0, false
	}
	return s.attrs.GetAsInt(canonical), true
}

func (s *Store) getFloat(canonical string) (float64, bool) {
	v := s.attrs.Get(canonical)
	if v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return s.attrs.GetAsFloat(canonical), true
}

func (s *Store) getString(canonical string) (string, bool) {
	v := s.attrs.Get(canonical)
	if v == nil {
		return "", false
	}
	if str, ok := v.(string); ok {
		return str, true
	}
	return "", false
}

func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create dir %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(s.attrs.AsMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	return nil
}
