package updatecmd

import (
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func TestUpdateRequiresNamesOrAll(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("update"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
	if want := "To update everything, pass the `--all` flag."; err.Error() != want {
		t.Fatalf("err = %q, want %q", err.Error(), want)
	}
}

func TestUpdateNamedGem(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "2.9", "rake": "12.0"})

	if err := handle(f.Context("update", "rack")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	led := f.Ledger()
	if led["rack"] != "3.0" {
		t.Fatalf("rack = %q, want repinned 3.0", led["rack"])
	}
	if led["rake"] != "12.0" {
		t.Fatalf("rake = %q, want untouched", led["rake"])
	}
}

func TestUpdateAll(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.WriteLedger(map[string]string{"rack": "2.9", "rake": "12.0"})

	ctx := f.Context("update")
	ctx.Options = cliopts.Values{"all": true}
	if err := handle(ctx); err != nil {
		t.Fatalf("handle: %v", err)
	}
	led := f.Ledger()
	if led["rack"] != "3.0" || led["rake"] != "0" {
		t.Fatalf("ledger = %v, want everything repinned", led)
	}
}

func TestUpdateUnknownGem(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("update", "sinatra"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
}
