package testutil

import (
	"context"
	"mindful/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Has reports whether at least one entry was logged at level.
func (m *MockLogger) Has(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu               sync.Mutex
	Actions          map[string]int
	PersistenceCalls int
	StreakCount      int
	BlocksToday      int
	ExtensionEnabled bool
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncActionsTotal(action string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Actions == nil {
		m.Actions = make(map[string]int)
	}
	key := action + ":success"
	if !success {
		key = action + ":failure"
	}
	m.Actions[key]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}

func (m *MockMetrics) SetStreakCount(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreakCount = count
}

func (m *MockMetrics) SetBlocksToday(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BlocksToday = count
}

func (m *MockMetrics) SetExtensionEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtensionEnabled = enabled
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockStore is an in-memory store with injectable failures.
type MockStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	GetErr   error
	SetErr   error
	GetCalls int
	SetCalls int
}

func (m *MockStore) Get(_ context.Context, keys ...string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MockStore) Set(_ context.Context, items map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	for k, v := range items {
		m.data[k] = v
	}
	return nil
}

// Raw returns the stored bytes for key.
func (m *MockStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockStore) Close() error { return nil }

// MockClock is a settable clock in a fixed location.
type MockClock struct {
	*providers.Clock
	mu      sync.Mutex
	current time.Time
}

func NewMockClock(now time.Time) *MockClock {
	m := &MockClock{current: now}
	m.Clock = providers.NewFixedClock(now.Location(), m.get)
	return m
}

func (m *MockClock) get() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *MockClock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = now
}

func (m *MockClock) AddDays(days int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.AddDate(0, 0, days)
}

// MockRuleSets implements blocking.RuleSetManagerInterface.
type MockRuleSets struct {
	mu      sync.Mutex
	Enabled map[string]bool
	Err     error
	Calls   int
}

func (m *MockRuleSets) UpdateEnabledRulesets(enable, disable []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	if m.Enabled == nil {
		m.Enabled = make(map[string]bool)
	}
	for _, id := range enable {
		m.Enabled[id] = true
	}
	for _, id := range disable {
		m.Enabled[id] = false
	}
	return nil
}

func (m *MockRuleSets) IsEnabled(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Enabled[id]
}

func (m *MockRuleSets) Match(_ string) (string, bool) {
	return "", false
}
