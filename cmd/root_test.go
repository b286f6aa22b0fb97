package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGatherTargets_FromArgs(t *testing.T) {
	targets, err := gatherTargets([]string{"http://example.com/a", "https://example.com/b"}, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].Method != "GET" {
		t.Errorf("default method = %s, want GET", targets[0].Method)
	}
}

func TestGatherTargets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	content := "http://example.com/one\nHEAD http://example.com/two\n\n# comment\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	targets, err := gatherTargets(nil, path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[1].Method != "HEAD" {
		t.Errorf("method = %s, want HEAD", targets[1].Method)
	}
}

func TestGatherTargets_RequiresExactlyOneSource(t *testing.T) {
	if _, err := gatherTargets(nil, "", false); err == nil {
		t.Error("no source should be rejected")
	}
	if _, err := gatherTargets([]string{"http://example.com"}, "targets.txt", false); err == nil {
		t.Error("multiple sources should be rejected")
	}
	if _, err := gatherTargets([]string{"http://example.com"}, "", true); err == nil {
		t.Error("multiple sources should be rejected")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"file", "clipboard", "no-progress", "no-history", "debug", "connect-timeout", "transfer-deadline"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}

func TestHistoryCommandRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "history" {
			if c.Flags().Lookup("limit") == nil {
				t.Error("history command missing --limit")
			}
			return
		}
	}
	t.Error("history subcommand not registered")
}
