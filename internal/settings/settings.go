// Package settings holds the process-wide configuration consulted by every
// validation pass.
package settings

import (
	"encoding/json"
	"fmt"
	"sync"
)

const defaultMaxErrors = 100

// Settings configures validation behavior. Clients replace the whole value
// on workspace/didChangeConfiguration; there is no partial merge.
type Settings struct {
	// ProtonExtensions enables Proton Mail specific keywords such as
	// 'expire' and 'currentdate'. When false their use is flagged.
	ProtonExtensions bool `json:"protonExtensions" toml:"proton_extensions"`

	// StrictMode requests strict RFC 5228 compliance. Carried on the wire
	// for clients; reserved for stricter rule sets.
	StrictMode bool `json:"strictMode" toml:"strict_mode"`

	// MaxErrors caps the diagnostics reported per document.
	MaxErrors int `json:"maxErrors" toml:"max_errors"`

	// SemanticAnalysis enables the declared-vs-used extension check.
	SemanticAnalysis bool `json:"semanticAnalysis" toml:"semantic_analysis"`
}

// Default returns the settings used until a client sends its own.
func Default() Settings {
	return Settings{
		ProtonExtensions: true,
		StrictMode:       false,
		MaxErrors:        defaultMaxErrors,
		SemanticAnalysis: true,
	}
}

// Decode parses a configuration payload. Missing fields keep their
// defaults and unknown fields are ignored; a payload that does not parse is
// rejected so the caller can retain the previous settings.
func Decode(raw []byte) (Settings, error) {
	s := Default()
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("invalid settings payload: %w", err)
	}
	if s.MaxErrors <= 0 {
		s.MaxErrors = defaultMaxErrors
	}
	return s, nil
}

// State guards the single current Settings value. Readers clone and never
// block each other; a writer holds the lock only for the swap.
type State struct {
	mu      sync.RWMutex
	current Settings
}

// NewState starts with the defaults.
func NewState() *State {
	return &State{current: Default()}
}

// Get returns a copy of the current settings. Validation runs call this
// once up front so a mid-run replacement never affects them.
func (st *State) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Set replaces the current settings wholesale.
func (st *State) Set(s Settings) {
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
}
