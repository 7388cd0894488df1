// Package cache persists parsed call-log files so repeat runs skip
// re-parsing unchanged data.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/joycelim/callheat/internal/core/model"
	"github.com/joycelim/callheat/internal/util"
)

// Entry is one cached call-log file: its records plus the identity of the
// file version they were parsed from.
type Entry struct {
	FilePath    string             `json:"filePath"`
	Info        util.FileInfo      `json:"info"`
	Fingerprint string             `json:"fingerprint"`
	Records     []model.CallRecord `json:"records"`
}

// FileCache stores entries as JSON files under a cache directory with a
// write-through memory layer.
type FileCache struct {
	baseDir string
	mu      sync.RWMutex
	memory  map[string]*Entry
}

func NewFileCache(baseDir string) (*FileCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{
		baseDir: baseDir,
		memory:  make(map[string]*Entry),
	}, nil
}

// cacheKey keys an entry by the log file's base name.
func cacheKey(filePath string) string {
	name := filepath.Base(filePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.baseDir, key+".json")
}

// Get returns the cached records for filePath when the file on disk still
// matches the cached fingerprint and stat identity.
func (c *FileCache) Get(filePath string) ([]model.CallRecord, bool) {
	key := cacheKey(filePath)

	c.mu.RLock()
	entry, ok := c.memory[key]
	c.mu.RUnlock()

	if !ok {
		entry = c.loadFromDisk(key)
		if entry == nil {
			return nil, false
		}
		c.mu.Lock()
		c.memory[key] = entry
		c.mu.Unlock()
	}

	if !c.stillValid(entry) {
		c.mu.Lock()
		delete(c.memory, key)
		c.mu.Unlock()
		return nil, false
	}

	return entry.Records, true
}

func (c *FileCache) loadFromDisk(key string) *Entry {
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil
	}
	var entry Entry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		util.LogDebug(fmt.Sprintf("Discarding unreadable cache entry %s: %v", key, err))
		return nil
	}
	return &entry
}

func (c *FileCache) stillValid(entry *Entry) bool {
	info, err := util.GetFileInfo(entry.FilePath)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: %v", entry.FilePath, err))
		return false
	}
	if info.Inode != entry.Info.Inode || info.Size != entry.Info.Size || info.ModTime != entry.Info.ModTime {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: file identity changed", entry.FilePath))
		return false
	}

	fingerprint, err := util.CalculateFileFingerprint(entry.FilePath)
	if err != nil || fingerprint != entry.Fingerprint {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: content fingerprint changed", entry.FilePath))
		return false
	}
	return true
}

// Set records the parse result for filePath along with the file identity
// it came from.
func (c *FileCache) Set(filePath string, records []model.CallRecord) error {
	info, err := util.GetFileInfo(filePath)
	if err != nil {
		return err
	}
	fingerprint, err := util.CalculateFileFingerprint(filePath)
	if err != nil {
		return err
	}

	entry := &Entry{
		FilePath:    filePath,
		Info:        *info,
		Fingerprint: fingerprint,
		Records:     records,
	}

	data, err := sonic.Marshal(entry)
	if err != nil {
		return err
	}

	key := cacheKey(filePath)
	if err := os.WriteFile(c.entryPath(key), data, 0644); err != nil {
		return err
	}

	c.mu.Lock()
	c.memory[key] = entry
	c.mu.Unlock()
	return nil
}

// Clear drops the memory layer and removes every cache file.
func (c *FileCache) Clear() error {
	c.mu.Lock()
	c.memory = make(map[string]*Entry)
	c.mu.Unlock()

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			if err := os.Remove(filepath.Join(c.baseDir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
