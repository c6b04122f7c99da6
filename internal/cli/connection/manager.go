package connection

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Profile errors.
var (
	ErrProfileNotFound = errors.New("connection: profile not found")
	ErrProfileExists   = errors.New("connection: profile already exists")
)

// Profile is a named API endpoint.
type Profile struct {
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url" yaml:"url"`
	CAFile string `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
}

// Manager tracks saved profiles and which one is in use.
type Manager struct {
	profiles map[string]Profile
	current  string
}

// NewManager creates a profile manager holding profiles. current may be
// empty; an unknown current name is ignored.
func NewManager(profiles []Profile, current string) *Manager {
	m := &Manager{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		m.profiles[p.Name] = p
	}
	if _, ok := m.profiles[current]; ok {
		m.current = current
	}
	return m
}

// Add saves a new profile.
func (m *Manager) Add(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("connection: profile name is required")
	}
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("connection: profile %q: url is required", p.Name)
	}
	if _, ok := m.profiles[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
	}
	m.profiles[p.Name] = p
	return nil
}

// Remove deletes a profile. Removing the current profile leaves none in use.
func (m *Manager) Remove(name string) error {
	if _, ok := m.profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	delete(m.profiles, name)
	if m.current == name {
		m.current = ""
	}
	return nil
}

// Use makes name the current profile.
func (m *Manager) Use(name string) error {
	if _, ok := m.profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	m.current = name
	return nil
}

// Current returns the profile in use, if any.
func (m *Manager) Current() (Profile, bool) {
	p, ok := m.profiles[m.current]
	return p, ok
}

// CurrentName returns the name of the profile in use, or "".
func (m *Manager) CurrentName() string {
	return m.current
}

// List returns all profiles sorted by name.
func (m *Manager) List() []Profile {
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
