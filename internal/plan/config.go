package plan

import "slices"

// Config holds configuration for the compilation process.
type Config struct {
	// StrictAttributes fails on unknown attribute keys instead of warning.
	StrictAttributes bool
	// BoolTypes are classified as flags.
	BoolTypes []string
	// CounterTypes are classified as occurrence counters.
	CounterTypes []string
	// OptionalWrappers are single-parameter generics meaning "zero or one".
	OptionalWrappers []string
	// SequenceWrappers are single-parameter generics meaning "any number".
	SequenceWrappers []string
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{
		StrictAttributes: false,
		BoolTypes:        []string{"bool"},
		CounterTypes:     []string{"uint64", "u64"},
		OptionalWrappers: []string{"Option"},
		SequenceWrappers: []string{"Vec"},
	}
}

func (c Config) isBool(name string) bool { return slices.Contains(c.BoolTypes, name) }
func (c Config) isCounter(name string) bool { return slices.Contains(c.CounterTypes, name) }
func (c Config) isOptional(name string) bool { return slices.Contains(c.OptionalWrappers, name) }
func (c Config) isSequence(name string) bool { return slices.Contains(c.SequenceWrappers, name) }
func (c Config) isWrapper(name string) bool { return c.isOptional(name) || c.isSequence(name) }
