package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	// Test setting version
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	// Test root command properties
	if rootCmd.Use != "mirrorctl" {
		t.Errorf("Expected Use to be 'mirrorctl', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	// Create a new command to test version template
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "mirrorctl version %s\n" .Version}}`)

	// Capture output
	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	// Execute version command
	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "mirrorctl version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestSubcommands(t *testing.T) {
	// Test that subcommands are added
	commands := rootCmd.Commands()

	expectedCommands := []string{"test", "remove", "list", "populate", "show", "version", "self-update"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	// Test that help can be generated without error
	var buf bytes.Buffer

	// Create a new command to avoid affecting the global one
	testRootCmd := &cobra.Command{
		Use:   "mirrorctl",
		Short: "Assemble, test, and roll back MagicMirror configurations",
		Long: `mirrorctl assembles your MagicMirror config.js from reusable per-module
fragments, applies the result to the running pm2-managed mirror, and rolls
everything back if the new configuration does not come up.`,
		SilenceUsage: true,
	}

	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})

	err := testRootCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "mirrorctl") {
		t.Errorf("Help output should contain 'mirrorctl'. Got: %q", output)
	}

	if !strings.Contains(output, "per-module") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}

func TestContains(t *testing.T) {
	list := []string{"clock", "MMM-weather"}

	if !contains(list, "clock") {
		t.Error("Expected contains to find 'clock'")
	}
	if contains(list, "MMM") {
		t.Error("contains must not match substrings")
	}
	if contains(nil, "clock") {
		t.Error("contains on nil slice must be false")
	}
}

func TestOrphanedFragments(t *testing.T) {
	fragments := []string{"MMM-old", "MMM-weather", "clock"}
	installed := []string{"MMM-weather", "clock"}

	orphans := orphanedFragments(fragments, installed)
	if len(orphans) != 1 || orphans[0] != "MMM-old" {
		t.Errorf("Expected [MMM-old], got %v", orphans)
	}

	if got := orphanedFragments(nil, installed); got != nil {
		t.Errorf("Expected no orphans for empty store, got %v", got)
	}

	if got := orphanedFragments(fragments, fragments); got != nil {
		t.Errorf("Expected no orphans when every fragment is installed, got %v", got)
	}
}
