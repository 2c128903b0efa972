package fsm

// BindingsConfig is the top-level TOML layout binding named actions to states
type BindingsConfig struct {
	States map[string]*StateConfig `toml:"states"`
}

// StateConfig lists lifecycle actions of a single state
type StateConfig struct {
	OnEnter []ActionConfig `toml:"on_enter,omitempty"`
	OnExit  []ActionConfig `toml:"on_exit,omitempty"`
}

// ActionConfig represents an action reference
type ActionConfig struct {
	Action string         `toml:"action"`         // Registered action name (e.g. "PlayCue")
	Args   map[string]any `toml:"args,omitempty"` // Passed verbatim to the action
}
