package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestBuiltinCommands(t *testing.T) {
	have := map[string]bool{}
	for _, n := range Names() {
		have[n] = true
	}
	for _, want := range []string{"catalog:seed", "cron:start", "db:migrate", "media:thumbnail", "products:import"} {
		if !have[want] {
			t.Errorf("command %s not registered; have %v", want, Names())
		}
	}
}

func TestRegister_DuplicateBuiltinPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering catalog:seed twice did not panic")
		}
	}()
	Register(&cobra.Command{Use: "catalog:seed"})
}

func TestRegister_ApplyRuns(t *testing.T) {
	out := &bytes.Buffer{}
	Register(&cobra.Command{
		Use: "test:ping",
		Run: func(c *cobra.Command, args []string) {
			c.OutOrStdout().Write([]byte("pong"))
		},
	})
	Apply()
	Apply()

	n := 0
	for _, name := range Names() {
		if name == "test:ping" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("test:ping added %d times, want 1", n)
	}

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"test:ping"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "pong" {
		t.Errorf("output = %q, want pong", out.String())
	}
}
