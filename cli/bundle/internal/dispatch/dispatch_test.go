package dispatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/plugins"
	"github.com/kayger44/rubygems/cli/bundle/internal/testutil"
)

func noLook(string) (string, error) { return "", errors.New("not found") }

func newResolver(f *testutil.Fixture) *Resolver {
	return &Resolver{
		Registry: f.Registry,
		Settings: f.Settings,
		UI:       f.UI,
		Dir:      f.Dir,
		LookPath: noLook,
	}
}

func TestResolveInternalFirst(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Registry.Register(cmdregistry.Descriptor{Name: "install", Aliases: []string{"i"}, Handler: func(*cmdregistry.Context) error { return nil }})
	r := newResolver(f)
	// even with a plugin and an external candidate for the same name,
	// the registry wins
	idx, err := plugins.Load(f.Dir)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if err := idx.Install("shadow", "/opt/shadow", []string{"install"}); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	r.LookPath = func(string) (string, error) { return "/usr/bin/bundler-install", nil }

	res := r.Resolve("install")
	if res.Kind != KindInternal || res.Descriptor.Name != "install" {
		t.Fatalf("Resolve(install) = %+v, want internal", res)
	}
	res = r.Resolve("i")
	if res.Kind != KindInternal {
		t.Fatalf("alias resolution = %+v, want internal", res)
	}
}

func TestResolvePluginBeatsExternal(t *testing.T) {
	f := testutil.NewFixture(t)
	r := newResolver(f)
	idx, err := plugins.Load(f.Dir)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if err := idx.Install("release-tool", "/opt/release-tool", []string{"release"}); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	r.LookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

	res := r.Resolve("release")
	if res.Kind != KindPlugin {
		t.Fatalf("Resolve(release) = %+v, want plugin", res)
	}
	if res.PluginName != "release-tool" || res.Path != "/opt/release-tool" {
		t.Fatalf("plugin resolution carries wrong fields: %+v", res)
	}
}

func TestResolvePluginsDisabled(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Settings.Plugins = false
	r := newResolver(f)
	idx, err := plugins.Load(f.Dir)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if err := idx.Install("release-tool", "/opt/release-tool", []string{"release"}); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	r.LookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

	res := r.Resolve("release")
	if res.Kind != KindExternal {
		t.Fatalf("Resolve with plugins off = %+v, want external", res)
	}
	if res.Path != "/usr/bin/bundler-release" {
		t.Fatalf("external path = %q", res.Path)
	}
}

func TestResolveExternalProbesPrefixedName(t *testing.T) {
	f := testutil.NewFixture(t)
	r := newResolver(f)
	var probed string
	r.LookPath = func(name string) (string, error) {
		probed = name
		return "", errors.New("not found")
	}

	res := r.Resolve("nuke")
	if probed != "bundler-nuke" {
		t.Fatalf("probed %q, want bundler-nuke", probed)
	}
	if res.Kind != KindUnresolved {
		t.Fatalf("Resolve(nuke) = %+v, want unresolved", res)
	}
}

func TestRunUnresolvedNamesTheCommand(t *testing.T) {
	f := testutil.NewFixture(t)
	r := newResolver(f)
	err := r.Run(Resolution{Kind: KindUnresolved}, nil, "frobnicate", nil, cmdregistry.GlobalOptions{})
	if !errkind.IsUnknownCommand(err) {
		t.Fatalf("err = %v, want unknown-command", err)
	}
	if want := `Could not find command "frobnicate".`; err.Error() != want {
		t.Fatalf("err = %q, want %q", err.Error(), want)
	}
}

func TestRunInternalParsesOptionsAndArgs(t *testing.T) {
	f := testutil.NewFixture(t)
	var got *cmdregistry.Context
	f.Registry.Register(cmdregistry.Descriptor{
		Name:    "remove",
		Options: []cliopts.Spec{{Name: "install", Type: cliopts.Bool}},
		Handler: func(c *cmdregistry.Context) error {
			got = c
			return nil
		},
	})
	r := newResolver(f)

	raw := []string{"remove", "--install", "rack"}
	res := r.Resolve("remove")
	if err := r.Run(res, raw, "remove", raw[1:], cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got == nil {
		t.Fatal("handler never ran")
	}
	if !got.Options.Bool("install") {
		t.Fatal("--install not parsed")
	}
	if len(got.Args) != 1 || got.Args[0] != "rack" {
		t.Fatalf("args = %v, want [rack]", got.Args)
	}
	if got.Command != "remove" || got.Dir != f.Dir {
		t.Fatalf("context fields wrong: %+v", got)
	}
}

func TestRunInternalParsesFlagsAfterPositionals(t *testing.T) {
	f := testutil.NewFixture(t)
	var got *cmdregistry.Context
	f.Registry.Register(cmdregistry.Descriptor{
		Name:    "add",
		Options: []cliopts.Spec{{Name: "version", Type: cliopts.String, Aliases: []string{"v"}}},
		Handler: func(c *cmdregistry.Context) error {
			got = c
			return nil
		},
	})
	r := newResolver(f)

	tail := []string{"rack", "--version", "3.0"}
	if err := r.Run(r.Resolve("add"), append([]string{"add"}, tail...), "add", tail, cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Options.String("version") != "3.0" {
		t.Fatalf("version = %q, want 3.0", got.Options.String("version"))
	}
	if len(got.Args) != 1 || got.Args[0] != "rack" {
		t.Fatalf("args = %v, want [rack]", got.Args)
	}
}

func TestRunInternalForwardKeepsChildArgv(t *testing.T) {
	f := testutil.NewFixture(t)
	var got *cmdregistry.Context
	f.Registry.Register(cmdregistry.Descriptor{
		Name:        "exec",
		Options:     []cliopts.Spec{{Name: "keep-file-descriptors", Type: cliopts.Bool}},
		ForwardArgs: true,
		Handler: func(c *cmdregistry.Context) error {
			got = c
			return nil
		},
	})
	r := newResolver(f)

	tail := []string{"rspec", "--color", "-b"}
	if err := r.Run(r.Resolve("exec"), append([]string{"exec"}, tail...), "exec", tail, cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(got.Args, tail) {
		t.Fatalf("args = %v, want %v", got.Args, tail)
	}
}

func TestRunInternalAcceptsGlobalFlagsAfterCommand(t *testing.T) {
	f := testutil.NewFixture(t)
	var got cmdregistry.GlobalOptions
	f.Registry.Register(cmdregistry.Descriptor{
		Name: "check",
		Handler: func(c *cmdregistry.Context) error {
			got = c.Global
			return nil
		},
	})
	r := newResolver(f)

	err := r.Run(r.Resolve("check"), nil, "check", []string{"--verbose", "--retry", "2"}, cmdregistry.GlobalOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !got.Verbose || got.Retry != 2 {
		t.Fatalf("globals after command not honored: %+v", got)
	}
}

func TestRunInternalGuardsEligibleCommands(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.Settings.AutoInstall = true
	installs := 0
	f.Registry.Register(cmdregistry.Descriptor{Name: "install", Handler: func(c *cmdregistry.Context) error {
		installs++
		return nil
	}})
	ran := false
	f.Registry.Register(cmdregistry.Descriptor{Name: "licenses", Handler: func(c *cmdregistry.Context) error {
		ran = true
		return nil
	}})
	r := newResolver(f)

	if err := r.Run(r.Resolve("licenses"), nil, "licenses", nil, cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if installs != 1 {
		t.Fatalf("guard ran install %d times, want 1", installs)
	}
	if !ran {
		t.Fatal("target handler never ran after repair")
	}
}

func TestRunInternalSkipsGuardForUnlistedCommands(t *testing.T) {
	f := testutil.NewFixture(t)
	f.WriteGemfile(testutil.SampleGemfile)
	f.Settings.AutoInstall = true
	installs := 0
	f.Registry.Register(cmdregistry.Descriptor{Name: "install", Handler: func(c *cmdregistry.Context) error {
		installs++
		return nil
	}})
	f.Registry.Register(cmdregistry.Descriptor{Name: "check", Handler: func(c *cmdregistry.Context) error {
		return nil
	}})
	r := newResolver(f)

	if err := r.Run(r.Resolve("check"), nil, "check", nil, cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if installs != 0 {
		t.Fatalf("guard ran install %d times for an unlisted command", installs)
	}
}

func TestRunExternalMirrorsExitCode(t *testing.T) {
	f := testutil.NewFixture(t)
	r := newResolver(f)
	script := filepath.Join(f.Dir, "bundler-nuke")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 7\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	err := r.Run(Resolution{Kind: KindExternal, Path: script}, nil, "nuke", []string{"--force"}, cmdregistry.GlobalOptions{})
	var status *errkind.ExitStatus
	if !errors.As(err, &status) || status.Code != 7 {
		t.Fatalf("err = %v, want exit status 7", err)
	}
}

func TestRunExternalZeroExitIsNil(t *testing.T) {
	f := testutil.NewFixture(t)
	r := newResolver(f)
	script := filepath.Join(f.Dir, "bundler-ok")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	if err := r.Run(Resolution{Kind: KindExternal, Path: script}, nil, "ok", nil, cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
}

func TestRunPluginPassesCommandAndTailVerbatim(t *testing.T) {
	f := testutil.NewFixture(t)
	r := newResolver(f)
	out := filepath.Join(f.Dir, "argv.txt")
	script := filepath.Join(f.Dir, "release-tool")
	body := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %s\n", out)
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	res := Resolution{Kind: KindPlugin, PluginName: "release-tool", Path: script}
	tail := []string{"--dry-run", "v1.2.3"}
	if err := r.Run(res, nil, "release", tail, cmdregistry.GlobalOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read argv capture: %v", err)
	}
	want := "release\n--dry-run\nv1.2.3\n"
	if string(data) != want {
		t.Fatalf("plugin argv = %q, want %q", data, want)
	}
	if !strings.HasPrefix(string(data), "release\n") {
		t.Fatal("plugin must receive the command name first")
	}
}
