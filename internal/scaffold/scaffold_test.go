package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/create-discord-bot/internal/discord"
	"github.com/agentx-labs/create-discord-bot/internal/manifest"
	"github.com/agentx-labs/create-discord-bot/internal/template"
	"github.com/google/go-cmp/cmp"
)

// ─── Fakes ─────────────────────────────────────────────────────────

type fakeInstaller struct {
	dirs []string
	err  error
}

func (f *fakeInstaller) Install(_ context.Context, dir string) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

type fakeResolver struct {
	tokens []string
	result discord.Identity
}

func (f *fakeResolver) Resolve(_ context.Context, token string) discord.Identity {
	f.tokens = append(f.tokens, token)
	return f.result
}

type fixture struct {
	params    Params
	env       Env
	installer *fakeInstaller
	resolver  *fakeResolver
	out       *bytes.Buffer
}

func newFixture(t *testing.T, name string) *fixture {
	t.Helper()
	parent := t.TempDir()
	f := &fixture{
		params: Params{
			Name:      name,
			Dir:       filepath.Join(parent, name),
			Token:     "tok.en.value",
			Generator: "create-discord-bot",
			Version:   "1.4.0",
		},
		installer: &fakeInstaller{},
		resolver:  &fakeResolver{result: discord.Resolved("987654321", "bot")},
		out:       &bytes.Buffer{},
	}
	f.env = Env{
		Template:  template.Embedded(),
		Files:     NewOSFiles(),
		Installer: f.installer,
		Identity:  f.resolver,
		Out:       f.out,
	}
	return f
}

// ─── Create plan ───────────────────────────────────────────────────

func TestCreatePlanShape(t *testing.T) {
	f := newFixture(t, "my-bot")
	plan := CreatePlan(f.params, f.env)

	if plan.Kind != Create {
		t.Errorf("Kind = %v, want create", plan.Kind)
	}
	steps := plan.Steps()
	if len(steps) != 6 {
		t.Fatalf("got %d steps, want 6", len(steps))
	}
	for i, s := range steps {
		wantExempt := i == 5
		if s.Exempt != wantExempt {
			t.Errorf("step %d (%s) Exempt = %v, want %v", i, s.Message, s.Exempt, wantExempt)
		}
	}
}

func TestCreatePlanWritesProject(t *testing.T) {
	f := newFixture(t, "my-bot")
	plan := CreatePlan(f.params, f.env)

	if err := Run(context.Background(), plan, false, f.out); err != nil {
		t.Fatalf("Run() error: %v\noutput:\n%s", err, f.out)
	}
	dir := f.params.Dir

	// Template tree copied.
	for _, name := range []string{"index.js", "README.md", "core/client.js", "core/commands/ping.js", "core/events/ready.js"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// Manifest: name and description replaced, everything else verbatim.
	got, err := manifest.Load(os.DirFS(dir), manifest.FileName)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "my-bot" {
		t.Errorf("name = %q, want my-bot", got.Name())
	}
	if got.Description() != "Generated by create-discord-bot v1.4.0" {
		t.Errorf("description = %q", got.Description())
	}
	tmpl, err := template.Embedded().Manifest()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tmpl.Keys(), got.Keys()); diff != "" {
		t.Errorf("manifest keys changed (-template +generated):\n%s", diff)
	}
	for _, key := range tmpl.Keys() {
		if key == "name" || key == "description" {
			continue
		}
		want, _ := tmpl.Raw(key)
		have, _ := got.Raw(key)
		if compact(t, want) != compact(t, have) {
			t.Errorf("field %q changed: %s -> %s", key, want, have)
		}
	}
	raw, _ := os.ReadFile(filepath.Join(dir, manifest.FileName))
	if !strings.HasSuffix(string(raw), "}\n") || !strings.Contains(string(raw), "\n  \"name\": \"my-bot\"") {
		t.Errorf("manifest not 2-space indented with trailing newline:\n%s", raw)
	}

	assertFileContent(t, filepath.Join(dir, IgnoreFile), "node_modules\n.env\n")
	assertFileContent(t, filepath.Join(dir, SecretsFile), "DISCORD_BOT_TOKEN=tok.en.value\n")

	if diff := cmp.Diff([]string{dir}, f.installer.dirs); diff != "" {
		t.Errorf("installer dirs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"tok.en.value"}, f.resolver.tokens); diff != "" {
		t.Errorf("resolver tokens (-want +got):\n%s", diff)
	}
	if !strings.Contains(f.out.String(), "client_id=987654321") {
		t.Errorf("invite link not printed:\n%s", f.out)
	}
	if strings.Contains(f.out.String(), "warning:") {
		t.Errorf("unexpected manifest warnings:\n%s", f.out)
	}
}

func TestCreatePlanPrintsMessagesInOrder(t *testing.T) {
	f := newFixture(t, "my-bot")
	if err := Run(context.Background(), CreatePlan(f.params, f.env), false, f.out); err != nil {
		t.Fatal(err)
	}

	out := f.out.String()
	last := -1
	for _, s := range CreatePlan(f.params, f.env).Steps() {
		idx := strings.Index(out, s.Message)
		if idx < 0 {
			t.Fatalf("message %q not printed", s.Message)
		}
		if idx < last {
			t.Errorf("message %q printed out of order", s.Message)
		}
		last = idx
	}
}

func TestCreateDryRunTouchesNothing(t *testing.T) {
	f := newFixture(t, "my-bot")
	f.resolver.result = discord.Failed("Discord rejected the bot token")

	if err := Run(context.Background(), CreatePlan(f.params, f.env), true, f.out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := os.Stat(f.params.Dir); !os.IsNotExist(err) {
		t.Errorf("dry run created %s (stat err = %v)", f.params.Dir, err)
	}
	entries, err := os.ReadDir(filepath.Dir(f.params.Dir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries into parent dir", len(entries))
	}
	if len(f.installer.dirs) != 0 {
		t.Errorf("installer ran during dry run: %v", f.installer.dirs)
	}
	if len(f.resolver.tokens) != 1 {
		t.Errorf("identity lookup ran %d times, want 1 (exempt step)", len(f.resolver.tokens))
	}
	if !strings.Contains(f.out.String(), discord.FallbackMessage) {
		t.Errorf("fallback message not printed:\n%s", f.out)
	}
}

func TestCreateLookupFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, "my-bot")
	f.resolver.result = discord.Failed("parsing response JSON: unexpected end of JSON input")

	if err := Run(context.Background(), CreatePlan(f.params, f.env), false, f.out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(f.out.String(), discord.FallbackMessage) {
		t.Errorf("fallback message not printed:\n%s", f.out)
	}
}

func TestCreateInstallerFailureStopsBeforeLookup(t *testing.T) {
	f := newFixture(t, "my-bot")
	installErr := errors.New("npm install exited with status 1")
	f.installer.err = installErr

	err := Run(context.Background(), CreatePlan(f.params, f.env), false, f.out)
	if !errors.Is(err, installErr) {
		t.Fatalf("Run() error = %v, want installer error", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 4 {
		t.Errorf("error = %#v, want StepError at index 4", err)
	}
	if len(f.resolver.tokens) != 0 {
		t.Error("identity lookup ran after installer failure")
	}
	if strings.Contains(f.out.String(), "Looking up your bot") {
		t.Errorf("lookup step message printed after failure:\n%s", f.out)
	}
}

func TestCreateFailsWhenDirectoryExists(t *testing.T) {
	f := newFixture(t, "my-bot")
	if err := os.Mkdir(f.params.Dir, 0o755); err != nil {
		t.Fatal(err)
	}

	err := Run(context.Background(), CreatePlan(f.params, f.env), false, f.out)
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 0 {
		t.Fatalf("Run() error = %v, want StepError at index 0", err)
	}
	entries, _ := os.ReadDir(f.params.Dir)
	if len(entries) != 0 {
		t.Errorf("files written after mkdir failure: %d entries", len(entries))
	}
	if len(f.installer.dirs) != 0 || len(f.resolver.tokens) != 0 {
		t.Error("later steps ran after mkdir failure")
	}
}

func TestCreateScopedName(t *testing.T) {
	f := newFixture(t, "my-bot")
	f.params.Name = "@acme/my-bot"
	f.params.Dir = filepath.Join(filepath.Dir(f.params.Dir), "@acme", "my-bot")

	if err := Run(context.Background(), CreatePlan(f.params, f.env), false, f.out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	m, err := manifest.Load(os.DirFS(f.params.Dir), manifest.FileName)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "@acme/my-bot" {
		t.Errorf("name = %q", m.Name())
	}
}

// ─── Update plan ───────────────────────────────────────────────────

func seedExistingProject(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{
		"package.json":        `{"name":"my-bot","version":"9.9.9"}`,
		".env":                "DISCORD_BOT_TOKEN=keep-me\n",
		".gitignore":          "custom\n",
		"core/client.js":      "// locally edited\n",
		"core/commands/me.js": "// user command\n",
		"index.js":            "// old entry\n",
		"notes.txt":           "mine\n",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return files
}

func TestUpdatePlanShape(t *testing.T) {
	f := newFixture(t, "my-bot")
	plan := UpdatePlan(f.params, f.env)
	if plan.Kind != Update || plan.Len() != 1 {
		t.Fatalf("got %v plan with %d steps, want update with 1", plan.Kind, plan.Len())
	}
	if plan.Steps()[0].Exempt {
		t.Error("update step must respect dry run")
	}
}

func TestUpdatePlanRefreshesCoreOnly(t *testing.T) {
	f := newFixture(t, "my-bot")
	seeded := seedExistingProject(t, f.params.Dir)
	tmpl := template.Embedded()

	for round := 1; round <= 2; round++ {
		if err := Run(context.Background(), UpdatePlan(f.params, f.env), false, f.out); err != nil {
			t.Fatalf("round %d: Run() error: %v", round, err)
		}

		for _, name := range []string{"core/client.js", "core/commands/ping.js", "core/events/ready.js", "index.js"} {
			want, err := readTemplate(tmpl, name)
			if err != nil {
				t.Fatal(err)
			}
			assertFileContent(t, filepath.Join(f.params.Dir, filepath.FromSlash(name)), want)
		}
		for _, name := range []string{"package.json", ".env", ".gitignore", "core/commands/me.js", "notes.txt"} {
			assertFileContent(t, filepath.Join(f.params.Dir, filepath.FromSlash(name)), seeded[name])
		}
		if _, err := os.Stat(filepath.Join(f.params.Dir, "README.md")); !os.IsNotExist(err) {
			t.Errorf("round %d: update copied files outside core", round)
		}
	}

	if len(f.installer.dirs) != 0 || len(f.resolver.tokens) != 0 {
		t.Error("update plan must not install or look up identity")
	}
}

func TestUpdateDryRunTouchesNothing(t *testing.T) {
	f := newFixture(t, "my-bot")
	seeded := seedExistingProject(t, f.params.Dir)

	if err := Run(context.Background(), UpdatePlan(f.params, f.env), true, f.out); err != nil {
		t.Fatal(err)
	}
	for name, content := range seeded {
		assertFileContent(t, filepath.Join(f.params.Dir, filepath.FromSlash(name)), content)
	}
}

// ─── Runner ────────────────────────────────────────────────────────

func TestRunStopsAtFirstError(t *testing.T) {
	var ran []int
	boom := errors.New("boom")
	step := func(i int, err error, exempt bool) Step {
		return Step{
			Message: "step",
			Exempt:  exempt,
			Action: func(context.Context) error {
				ran = append(ran, i)
				return err
			},
		}
	}
	plan := Plan{Kind: Create, steps: []Step{
		step(0, nil, false),
		step(1, boom, false),
		step(2, nil, true),
	}}

	err := Run(context.Background(), plan, false, &bytes.Buffer{})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if diff := cmp.Diff([]int{0, 1}, ran); diff != "" {
		t.Errorf("executed steps (-want +got):\n%s", diff)
	}

	ran = nil
	if err := Run(context.Background(), plan, true, &bytes.Buffer{}); err != nil {
		t.Fatalf("dry Run() error = %v", err)
	}
	if diff := cmp.Diff([]int{2}, ran); diff != "" {
		t.Errorf("dry run executed (-want +got):\n%s", diff)
	}
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	PrintSummary(&out, Plan{Kind: Create}, "my-bot", false)
	if !strings.Contains(out.String(), "cd my-bot") || !strings.Contains(out.String(), "npm start") {
		t.Errorf("summary missing next steps:\n%s", out.String())
	}

	out.Reset()
	PrintSummary(&out, Plan{Kind: Update}, "my-bot", true)
	if !strings.Contains(out.String(), "Dry run complete") || !strings.Contains(out.String(), "up to date") {
		t.Errorf("update dry-run summary:\n%s", out.String())
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.4.0", "Generated by create-discord-bot v1.4.0"},
		{"v2.0.1", "Generated by create-discord-bot v2.0.1"},
		{"dev", "Generated by create-discord-bot dev"},
		{"", "Generated by create-discord-bot"},
	}
	for _, tt := range tests {
		if got := Description("create-discord-bot", tt.version); got != tt.want {
			t.Errorf("Description(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestPlanKindString(t *testing.T) {
	if Create.String() != "create" || Update.String() != "update" {
		t.Errorf("got %q, %q", Create, Update)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(got) != want {
		t.Errorf("%s = %q, want %q", filepath.Base(path), got, want)
	}
}

func readTemplate(tmpl *template.Template, name string) (string, error) {
	f, err := tmpl.FS.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(f)
	return buf.String(), err
}

func compact(t *testing.T, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		t.Fatalf("compacting %s: %v", raw, err)
	}
	return buf.String()
}
