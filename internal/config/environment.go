package config

import (
	"os"
	"sync"
)

// Environment is the variable table the resolver reads from and merges env
// file values into.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// OSEnvironment reads and writes the process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Setenv implements Environment.
func (OSEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// MapEnvironment is an in-memory Environment, used to resolve settings in
// isolation from the process table.
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment copies vars into a new MapEnvironment.
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	env := &MapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

// LookupEnv implements Environment.
func (m *MapEnvironment) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vars[key]
	return v, ok
}

// Setenv implements Environment.
func (m *MapEnvironment) Setenv(key, value string) error {
	m.mu.Lock()
	m.vars[key] = value
	m.mu.Unlock()

	return nil
}
