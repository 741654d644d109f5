package execcmd

import (
	"errors"
	"os"
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func TestExecMirrorsChildExitCode(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("exec", "sh", "-c", "exit 7"))
	var status *errkind.ExitStatus
	if !errors.As(err, &status) || status.Code != 7 {
		t.Fatalf("err = %v, want exit status 7", err)
	}
}

func TestExecZeroExit(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	if err := handle(f.Context("exec", "true")); err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
}

func TestExecExportsManifestPath(t *testing.T) {
	// the fixture clears BUNDLE_GEMFILE and registers its restoration
	f := testutil.NewFixture(t)
	path := f.WriteGemfile(testutil.SampleGemfile)

	if err := handle(f.Context("exec", "true")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := os.Getenv("BUNDLE_GEMFILE"); got != path {
		t.Fatalf("BUNDLE_GEMFILE = %q, want %q", got, path)
	}
}

func TestExecEmptyArgv(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("exec"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
	if want := "exec needs a command to run"; err.Error() != want {
		t.Fatalf("err = %q, want %q", err.Error(), want)
	}
}

func TestExecCommandNotFound(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("exec", "definitely-not-a-real-command-xyz"))
	var status *errkind.ExitStatus
	if !errors.As(err, &status) || status.Code != 127 {
		t.Fatalf("err = %v, want exit status 127", err)
	}
}

func TestExecRequiresGemfile(t *testing.T) {
	f := testutil.NewFixture(t)
	err := handle(f.Context("exec", "true"))
	if err == nil || err.Error() != "Could not locate Gemfile" {
		t.Fatalf("err = %v, want locate failure", err)
	}
}
