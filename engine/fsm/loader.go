package fsm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// LoadBindings parses TOML action bindings and appends them to the declared states
// Validates state and action references, must be called before Init
func (m *Machine[T]) LoadBindings(data []byte) error {
	if m.initialized {
		return fmt.Errorf("load bindings after init: %w", ErrNotInitialized)
	}

	var config BindingsConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("failed to decode state bindings: %s", strict.String())
		}
		return fmt.Errorf("failed to decode state bindings: %w", err)
	}

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(config.States))
	for name := range config.States {
		names = append(names, name)
	}
	sort.Strings(names)

	// Compile everything before mutating any node
	type compiled struct {
		node    *Node[T]
		onEnter []Action[T]
		onExit  []Action[T]
	}
	result := make([]compiled, 0, len(names))

	for _, name := range names {
		cfg := config.States[name]
		id, ok := m.byName[name]
		if !ok {
			return fmt.Errorf("bindings reference state '%s': %w", name, ErrUnknownState)
		}
		if cfg == nil {
			continue
		}

		onEnter, err := m.compileActions(cfg.OnEnter)
		if err != nil {
			return fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		onExit, err := m.compileActions(cfg.OnExit)
		if err != nil {
			return fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		result = append(result, compiled{node: m.nodes[id], onEnter: onEnter, onExit: onExit})
	}

	for _, c := range result {
		c.node.OnEnter = append(c.node.OnEnter, c.onEnter...)
		c.node.OnExit = append(c.node.OnExit, c.onExit...)
	}
	return nil
}

// LoadBindingsAuto loads bindings with priority: customPath > embedded
func (m *Machine[T]) LoadBindingsAuto(customPath, embedded string) error {
	if customPath == "" {
		return m.LoadBindings([]byte(embedded))
	}
	data, err := os.ReadFile(customPath)
	if err != nil {
		return fmt.Errorf("failed to read state bindings: %w", err)
	}
	if err := m.LoadBindings(data); err != nil {
		return fmt.Errorf("%s: %w", customPath, err)
	}
	return nil
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("action '%s': %w", cfg.Action, ErrUnknownAction)
		}

		var args any
		if cfg.Args != nil {
			args = cfg.Args
		}
		actions = append(actions, Action[T]{
			Name: cfg.Action,
			Func: fn,
			Args: args,
		})
	}
	return actions, nil
}
