// Package site holds the mutable, process-lifetime state the admin panel edits:
// the site title and icon, and the admin credentials. Neither is persisted;
// a restart reverts both to their configured defaults.
package site

import (
	"sync"

	"github.com/romangod6/kvblog/internal/models"
)

// Settings is the current SiteConfig. Updates replace both fields at once.
type Settings struct {
	mu  sync.RWMutex
	cfg models.SiteConfig
}

func NewSettings(initial models.SiteConfig) *Settings {
	return &Settings{cfg: initial}
}

// Get returns a copy of the current config.
func (s *Settings) Get() models.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update overwrites title and icon unconditionally. Empty values are kept as given.
func (s *Settings) Update(title, icon string) models.SiteConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = models.SiteConfig{Title: title, Icon: icon}
	return s.cfg
}
