// Package assets resolves lumps from WAD archives and loose files.
package assets

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/doomcolors/internal/logger"
	"github.com/Faultbox/doomcolors/pkg/wad"
)

// ErrNotFound is returned when no source provides a lump.
var ErrNotFound = errors.New("lump not found in any source")

// Manager handles lump loading from WAD archives.
type Manager struct {
	archives []*wad.Archive
	names    []string
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddArchive adds a WAD archive to the manager.
// Archives are searched in reverse order (last added = highest priority),
// matching how the engine layers PWADs over the IWAD.
func (m *Manager) AddArchive(path string) error {
	archive, err := wad.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.names = append(m.names, path)
	m.mu.Unlock()

	logger.Debug("added archive",
		zap.String("path", path),
		zap.String("kind", string(archive.Kind())),
		zap.Int("lumps", len(archive.Entries())))
	return nil
}

// Load loads a lump from the archives.
func (m *Manager) Load(name string) ([]byte, error) {
	name = strings.ToUpper(name)
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.archives) - 1; i >= 0; i-- {
		data, err := m.archives[i].Read(name)
		if errors.Is(err, wad.ErrLumpNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", name, m.names[i], err)
		}

		logger.Debug("loaded lump", zap.String("lump", name), zap.String("archive", m.names[i]), zap.Int("bytes", len(data)))
		m.cache.Set(name, data)
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Close closes all archives.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.names = nil
	m.cache.Clear()
}

// LoadBasePalette returns base palette bytes. A loose file wins over the
// archives; otherwise lump is read from wads in priority order.
func LoadBasePalette(file string, wads []string, lump string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading palette file: %w", err)
		}
		logger.Debug("loaded palette file", zap.String("path", file), zap.Int("bytes", len(data)))
		return data, nil
	}

	if len(wads) == 0 {
		return nil, errors.New("no palette file or WAD given")
	}

	m := NewManager()
	defer m.Close()

	for _, path := range wads {
		if err := m.AddArchive(path); err != nil {
			return nil, err
		}
	}
	return m.Load(lump)
}

// Cache is a simple in-memory cache for loaded lumps.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.data[key]
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
}

// Len returns the number of cached lumps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
