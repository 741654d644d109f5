package opencmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func clearEditors(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BUNDLER_EDITOR", "VISUAL", "EDITOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestOpenWithoutEditor(t *testing.T) {
	clearEditors(t)
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "3.0", "rake": "13.0"})

	err := handle(f.Context("open", "rack"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
	if want := "To open a bundled gem, set $EDITOR or $BUNDLER_EDITOR"; err.Error() != want {
		t.Fatalf("err = %q, want %q", err.Error(), want)
	}
}

func TestOpenSpawnsEditorOnGemDir(t *testing.T) {
	clearEditors(t)
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "3.0", "rake": "13.0"})

	capture := filepath.Join(f.Dir, "opened.txt")
	editor := filepath.Join(f.Dir, "fake-editor")
	script := "#!/bin/sh\necho \"$1\" > " + capture + "\n"
	if err := os.WriteFile(editor, []byte(script), 0o755); err != nil {
		t.Fatalf("write editor: %v", err)
	}
	t.Setenv("BUNDLER_EDITOR", editor)

	if err := handle(f.Context("open", "rack")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	data, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("editor never ran: %v", err)
	}
	want := filepath.Join(f.Dir, ".bundle", "gems", "rack-3.0")
	if got := strings.TrimSpace(string(data)); got != want {
		t.Fatalf("editor opened %q, want %q", got, want)
	}
}

func TestOpenNoArgument(t *testing.T) {
	clearEditors(t)
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("open"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
}

func TestOpenUnknownGem(t *testing.T) {
	clearEditors(t)
	t.Setenv("EDITOR", "true")
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "3.0", "rake": "13.0"})

	err := handle(f.Context("open", "sinatra"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
}
