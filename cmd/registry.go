package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"shopzone.GO/core/registry"
)

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register adds a command from an extension package. Call from init().
// Panics once Apply has run or when the name is already taken.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	if hasCommand(c.Name()) {
		panic("cmd/registry: duplicate command " + c.Name())
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

func hasCommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
	}
	for _, c := range registered() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// Apply adds registered commands to the root and locks the registry.
// Calling it again is a no-op.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}

// Names lists the root's subcommands, sorted.
func Names() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}
