package removecmd

import (
	"strings"
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/installcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func TestRemoveEditsOnlyTheGemfile(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "3.0", "rake": "13.0"})

	if err := handle(f.Context("remove", "rack")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	body := f.Gemfile()
	if strings.Contains(body, "rack") {
		t.Fatalf("rack still declared:\n%s", body)
	}
	if !strings.Contains(body, "rake") {
		t.Fatalf("unrelated declaration lost:\n%s", body)
	}
	// without --install nothing else may change
	if f.Ledger()["rack"] != "3.0" {
		t.Fatal("plain remove must not touch the ledger")
	}
	if f.Lockfile() != "" {
		t.Fatal("plain remove must not write a lockfile")
	}
}

func TestRemoveEmptyGemList(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	before := f.Gemfile()

	err := handle(f.Context("remove"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
	if want := "Please specify gems to remove."; err.Error() != want {
		t.Fatalf("err = %q, want %q", err.Error(), want)
	}
	if f.Gemfile() != before {
		t.Fatal("empty gem list must perform no edit")
	}
}

func TestRemoveUnknownGemFailsWholeEdit(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	before := f.Gemfile()

	err := handle(f.Context("remove", "rack", "sinatra"))
	if err == nil || !strings.Contains(err.Error(), "`sinatra` is not specified in") {
		t.Fatalf("err = %v, want missing-name failure", err)
	}
	if f.Gemfile() != before {
		t.Fatal("partial removal written despite failure")
	}
}

func TestRemoveInstallCascadeRunsAfterRemoval(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "3.0", "rake": "13.0"})
	installcmd.Register(f.Registry)

	ctx := f.Context("remove", "rack")
	ctx.Options = cliopts.Values{"install": true}
	if err := handle(ctx); err != nil {
		t.Fatalf("handle: %v", err)
	}
	// install ran against the edited manifest, so the lock knows only rake
	lock := f.Lockfile()
	if lock == "" {
		t.Fatal("cascade never ran install")
	}
	if strings.Contains(lock, "rack") {
		t.Fatalf("lockfile still references the removed gem:\n%s", lock)
	}
	if !strings.Contains(lock, "rake") {
		t.Fatalf("lockfile lost the surviving gem:\n%s", lock)
	}
}
