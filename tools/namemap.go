package tools

import (
	"errors"
	"fmt"
)

// NameMap translates the names advertised to the model into registry keys.
// The two name spaces are allowed to differ; Validate pins the mapping
// down at startup instead of letting the spaces drift apart silently.
type NameMap struct {
	byAdvertised map[string]string
}

func NewNameMap() *NameMap {
	return &NameMap{byAdvertised: make(map[string]string)}
}

// IdentityNameMap maps every registered tool to itself.
func IdentityNameMap(r *Registry) *NameMap {
	m := NewNameMap()
	for _, name := range r.Names() {
		m.byAdvertised[name] = name
	}
	return m
}

// Bind associates an advertised name with a registry key.
func (m *NameMap) Bind(advertised, key string) error {
	if advertised == "" || key == "" {
		return errors.New("namemap: advertised name and key must not be empty")
	}
	if existing, ok := m.byAdvertised[advertised]; ok {
		return fmt.Errorf("namemap: %q already bound to %q", advertised, existing)
	}
	m.byAdvertised[advertised] = key
	return nil
}

// Resolve returns the registry key for an advertised name.
func (m *NameMap) Resolve(advertised string) (string, bool) {
	key, ok := m.byAdvertised[advertised]
	return key, ok
}

// AdvertisedFor returns the advertised name bound to a registry key.
// Only meaningful on a validated map, where each key has exactly one.
func (m *NameMap) AdvertisedFor(key string) (string, bool) {
	for advertised, k := range m.byAdvertised {
		if k == key {
			return advertised, true
		}
	}
	return "", false
}

// Validate checks the mapping is total and unambiguous against a registry:
// every advertised name resolves to a registered tool, and every
// registered tool is reachable through exactly one advertised name.
func (m *NameMap) Validate(r *Registry) error {
	reachedBy := make(map[string]string)
	for advertised, key := range m.byAdvertised {
		if _, err := r.Resolve(key); err != nil {
			return fmt.Errorf("namemap: advertised %q targets unregistered tool %q", advertised, key)
		}
		if prev, ok := reachedBy[key]; ok {
			return fmt.Errorf("namemap: tool %q reachable via both %q and %q", key, prev, advertised)
		}
		reachedBy[key] = advertised
	}
	for _, name := range r.Names() {
		if _, ok := reachedBy[name]; !ok {
			return fmt.Errorf("namemap: tool %q has no advertised name", name)
		}
	}
	return nil
}
