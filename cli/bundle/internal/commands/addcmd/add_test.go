package addcmd

import (
	"strings"
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/installcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func TestAddDeclaresAndInstalls(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	installcmd.Register(f.Registry)

	ctx := f.Context("add", "sinatra")
	ctx.Options = cliopts.Values{"version": "~> 4.0", "group": "dev"}
	if err := handle(ctx); err != nil {
		t.Fatalf("handle: %v", err)
	}
	body := f.Gemfile()
	if !strings.Contains(body, `gem "sinatra", "~> 4.0", group: :dev`) {
		t.Fatalf("declaration missing:\n%s", body)
	}
	if f.Ledger()["sinatra"] != "4.0" {
		t.Fatalf("ledger = %v, want sinatra installed by cascade", f.Ledger())
	}
}

func TestAddSkipInstall(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	// install deliberately unregistered: the cascade must not run

	ctx := f.Context("add", "sinatra")
	ctx.Options = cliopts.Values{"skip-install": true}
	if err := handle(ctx); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(f.Gemfile(), `gem "sinatra"`) {
		t.Fatal("declaration missing")
	}
	if len(f.Ledger()) != 0 {
		t.Fatalf("ledger = %v, want untouched", f.Ledger())
	}
}

func TestAddEmptyGemList(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	err := handle(f.Context("add"))
	if !errkind.IsInvalidOption(err) {
		t.Fatalf("err = %v, want invalid-option", err)
	}
}

func TestAddReplacesExistingDeclaration(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	ctx := f.Context("add", "rack")
	ctx.Options = cliopts.Values{"version": "~> 3.1", "skip-install": true}
	if err := handle(ctx); err != nil {
		t.Fatalf("handle: %v", err)
	}
	body := f.Gemfile()
	if strings.Count(body, `gem "rack"`) != 1 {
		t.Fatalf("rack declared more than once:\n%s", body)
	}
	if !strings.Contains(body, `gem "rack", "~> 3.1"`) {
		t.Fatalf("requirement not updated:\n%s", body)
	}
}
