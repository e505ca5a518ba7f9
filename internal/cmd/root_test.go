package cmd

import (
	"testing"
)

// TestRootCommandWiring verifies all verification subcommands are
// registered
func TestRootCommandWiring(t *testing.T) {
	root := NewRootCommand()

	want := []string{"check", "bugs", "manifest", "classpath", "history"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

// TestRootCommandName verifies the command identity
func TestRootCommandName(t *testing.T) {
	root := NewRootCommand()
	if root.Use != "buildgate" {
		t.Errorf("Use = %q, want buildgate", root.Use)
	}
	if !root.SilenceUsage {
		t.Error("SilenceUsage should be set to avoid duplicate help on errors")
	}
}

// TestRootConfigFlag verifies the persistent config flag default
func TestRootConfigFlag(t *testing.T) {
	root := NewRootCommand()
	flag := root.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("config flag not registered")
	}
	if flag.DefValue != ".buildgate/config.yaml" {
		t.Errorf("config default = %q", flag.DefValue)
	}
}
