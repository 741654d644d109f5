package cachecmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func TestCacheInstallsAndSnapshotsGems(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)

	if err := handle(f.Context("cache")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	// install ran first
	if f.Ledger()["rack"] != "3.0" {
		t.Fatalf("ledger = %v, want rack installed", f.Ledger())
	}
	for _, name := range []string{"rack-3.0.gem", "rake-0.gem"} {
		if _, err := os.Stat(filepath.Join(f.Dir, "vendor", "cache", name)); err != nil {
			t.Fatalf("cached artifact %s missing: %v", name, err)
		}
	}
}
