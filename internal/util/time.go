package util

import (
	"fmt"
	"sync"
	"time"
)

// Default time zones for the two parties, matching the original dataset.
const (
	DefaultLocalZone  = "Asia/Singapore"
	DefaultRemoteZone = "Pacific/Auckland"
)

// TimeProvider holds the two time-zone locations a call log is viewed in:
// the local party's zone and the remote party's zone.
type TimeProvider struct {
	local  *time.Location
	remote *time.Location
	mu     sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the
// given IANA zone names. Empty names fall back to the defaults.
func InitializeTimeProvider(localZone, remoteZone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetZones(localZone, remoteZone); err != nil {
		return err
	}

	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider, initializing it with
// the default zones when needed.
func GetTimeProvider() *TimeProvider {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()
	if globalTimeProvider == nil {
		provider := &TimeProvider{}
		if err := provider.SetZones(DefaultLocalZone, DefaultRemoteZone); err != nil {
			panic(err)
		}
		globalTimeProvider = provider
	}
	return globalTimeProvider
}

// SetZones updates both view locations.
func (tp *TimeProvider) SetZones(localZone, remoteZone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	local, err := loadZone(localZone, DefaultLocalZone)
	if err != nil {
		return err
	}
	remote, err := loadZone(remoteZone, DefaultRemoteZone)
	if err != nil {
		return err
	}
	tp.local = local
	tp.remote = remote
	return nil
}

func loadZone(name, fallback string) (*time.Location, error) {
	if name == "" {
		name = fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w\nValid examples: UTC, Asia/Singapore, Pacific/Auckland, Europe/London", name, err)
	}
	return loc, nil
}

// Local returns the local party's location.
func (tp *TimeProvider) Local() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.local
}

// Remote returns the remote party's location.
func (tp *TimeProvider) Remote() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.remote
}
