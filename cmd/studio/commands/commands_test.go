package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/haivivi/studio/pkg/cli"
	"github.com/haivivi/studio/pkg/hfinference"
	"github.com/haivivi/studio/pkg/history"
	"github.com/haivivi/studio/pkg/studio"
)

// resetFlags restores the local flags of cmd to their defaults between runs.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	oldOut, oldErr := cli.Stdout, cli.Stderr
	var outBuf, errBuf bytes.Buffer
	cli.Stdout, cli.Stderr = &outBuf, &errBuf
	defer func() { cli.Stdout, cli.Stderr = oldOut, oldErr }()

	cfgFile, contextName, outputFile, inputFile = "", "", "", ""
	outputJSON, verbose = false, false
	resetFlags(configAddContextCmd)
	resetFlags(historyListCmd)

	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// backend fakes the inference, router and speech endpoints.
type backend struct {
	calls     atomic.Int32
	imageCode int
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.calls.Add(1)
	switch r.URL.Path {
	case "/models/" + hfinference.ModelFluxDev:
		if b.imageCode != 0 {
			w.WriteHeader(b.imageCode)
			io.WriteString(w, `{"error":"Model is currently loading","estimated_time":20}`)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	case "/models/" + hfinference.ModelViTGPT2Caption:
		io.WriteString(w, `[{"generated_text":"a fox in the snow"}]`)
	case "/models/" + hfinference.ModelOpusMTEnAr:
		io.WriteString(w, `[{"translation_text":"ثعلب"}]`)
	case "/v1/chat/completions":
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"m",`+
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Four."}}]}`)
	case "/translate_tts":
		w.Header().Set("Content-Type", "audio/mpeg")
		io.WriteString(w, "ID3")
	default:
		http.NotFound(w, r)
	}
}

type env struct {
	cfg      string
	out      string
	storage  string
	backend  *backend
	baseArgs []string
}

// setupEnv creates a config with one context pointing at a fake backend.
func setupEnv(t *testing.T, withHistory bool) *env {
	t.Helper()
	dir := t.TempDir()
	b := &backend{}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	e := &env{
		cfg:     filepath.Join(dir, "config.yaml"),
		out:     filepath.Join(dir, "out"),
		storage: filepath.Join(dir, "audio"),
		backend: b,
	}
	e.baseArgs = []string{"--config", e.cfg}

	args := append([]string{}, e.baseArgs...)
	args = append(args, "config", "add-context", "test",
		"--api-key", "hf_testtoken123",
		"--base-url", srv.URL,
		"--router-url", srv.URL+"/v1",
		"--speech-base-url", srv.URL,
		"--storage-dir", e.storage,
	)
	if withHistory {
		args = append(args, "--history-dir", filepath.Join(dir, "history"))
	}
	if _, _, err := runCmd(t, args...); err != nil {
		t.Fatalf("add-context: %v", err)
	}
	return e
}

func (e *env) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCmd(t, append(append([]string{}, e.baseArgs...), args...)...)
}

func TestConfigContexts(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	for _, name := range []string{"alpha", "beta"} {
		if _, _, err := runCmd(t, "--config", cfg, "config", "add-context", name, "--api-key", "hf_abcdefghijkl"); err != nil {
			t.Fatalf("add-context %s: %v", name, err)
		}
	}

	out, _, err := runCmd(t, "--config", cfg, "config", "list")
	if err != nil {
		t.Fatal(err)
	}
	var current []string
	for _, line := range strings.Split(out, "\n") {
		if fields := strings.Fields(line); len(fields) > 1 && fields[0] == "*" {
			current = append(current, fields[1])
		}
	}
	if len(current) != 1 || current[0] != "alpha" {
		t.Errorf("current contexts = %v, want [alpha]\n%s", current, out)
	}

	if _, _, err := runCmd(t, "--config", cfg, "config", "use-context", "beta"); err != nil {
		t.Fatal(err)
	}
	out, _, _ = runCmd(t, "--config", cfg, "config", "get-context")
	if strings.TrimSpace(out) != "beta" {
		t.Errorf("get-context = %q, want beta", out)
	}

	out, _, _ = runCmd(t, "--config", cfg, "config", "view")
	if strings.Contains(out, "hf_abcdefghijkl") || !strings.Contains(out, "hf_a") {
		t.Errorf("view does not mask the key: %q", out)
	}

	if _, _, err := runCmd(t, "--config", cfg, "config", "delete-context", "alpha"); err != nil {
		t.Fatal(err)
	}
	loaded, err := cli.LoadConfigWithPath(appName, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.ListContexts(); len(got) != 1 || got[0] != "beta" {
		t.Errorf("contexts = %v, want [beta]", got)
	}
}

func TestAddContextValidation(t *testing.T) {
	t.Setenv(cli.TokenEnv, "")
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	if _, _, err := runCmd(t, "--config", cfg, "config", "add-context", "x"); err == nil {
		t.Error("add-context without a key succeeded")
	}
	if _, _, err := runCmd(t, "--config", cfg, "config", "add-context", "x", "--api-key", "k", "--caption-backend", "blip"); err == nil {
		t.Error("add-context with an unknown caption backend succeeded")
	}
}

func TestModeCommandAliases(t *testing.T) {
	for _, alias := range []string{"full-story-pipeline", "pipeline", "text-to-speech", "tts", "single-image", "translation"} {
		cmd, _, err := rootCmd.Find([]string{alias})
		if err != nil {
			t.Fatalf("Find(%q): %v", alias, err)
		}
		want, _ := studio.ParseMode(alias)
		if cmd.Name() != string(want) {
			t.Errorf("%q resolves to %q, want %q", alias, cmd.Name(), want)
		}
	}
}

func TestModesCommand(t *testing.T) {
	out, _, err := runCmd(t, "--config", filepath.Join(t.TempDir(), "c.yaml"), "modes")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range studio.Modes() {
		if !strings.Contains(out, string(m.Mode)) {
			t.Errorf("modes output missing %s", m.Mode)
		}
	}
}

func TestStoryCommand(t *testing.T) {
	e := setupEnv(t, true)

	out, stderr, err := e.run(t, "story", "a", "red", "fox", "-o", e.out)
	if err != nil {
		t.Fatalf("story: %v\n%s", err, stderr)
	}
	for _, title := range []string{"Generated Image", "Caption (Title)", "Story Script", "Arabic Translation", "Narration"} {
		if !strings.Contains(out, title) {
			t.Errorf("output missing panel %q", title)
		}
	}

	saved, _ := filepath.Glob(filepath.Join(e.out, "*"))
	var exts []string
	for _, p := range saved {
		exts = append(exts, filepath.Ext(p))
	}
	if strings.Join(exts, ",") != ".png,.mp3" && strings.Join(exts, ",") != ".mp3,.png" {
		t.Errorf("saved = %v, want an image and the narration", saved)
	}

	// The transient narration file is gone.
	filepath.WalkDir(e.storage, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			t.Errorf("leftover transient file %s", path)
		}
		return nil
	})

	out, _, err = e.run(t, "history", "list")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "story") || !strings.Contains(lines[1], " ok ") {
		t.Fatalf("history list = %q", out)
	}
	id := strings.Fields(lines[1])[0]

	out, _, err = e.run(t, "--json", "history", "show", id)
	if err != nil {
		t.Fatal(err)
	}
	var rec history.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rec.Input != "a red fox" || len(rec.Artifacts) != 5 {
		t.Errorf("record = %+v", rec)
	}

	if _, _, err := e.run(t, "history", "delete", id); err != nil {
		t.Fatal(err)
	}
	if _, _, err := e.run(t, "history", "show", id); err == nil {
		t.Error("show after delete succeeded")
	}
}

func TestChatCommandJSON(t *testing.T) {
	e := setupEnv(t, false)

	out, _, err := e.run(t, "--json", "chat", "What is 2+2?")
	if err != nil {
		t.Fatal(err)
	}
	var rec history.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rec.Mode != "chat" || len(rec.Artifacts) != 1 || rec.Artifacts[0].Text != "Four." {
		t.Errorf("record = %+v", rec)
	}
	if e.backend.calls.Load() != 1 {
		t.Errorf("backend calls = %d, want 1", e.backend.calls.Load())
	}
}

func TestEmptyInputCommand(t *testing.T) {
	e := setupEnv(t, false)

	out, _, err := e.run(t, "translate")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Please enter the text to translate.") {
		t.Errorf("output = %q", out)
	}
	if e.backend.calls.Load() != 0 {
		t.Errorf("backend calls = %d, want 0", e.backend.calls.Load())
	}
}

func TestFailedStageReturnsError(t *testing.T) {
	e := setupEnv(t, false)
	e.backend.imageCode = http.StatusServiceUnavailable

	_, stderr, err := e.run(t, "image", "a castle")
	if err == nil {
		t.Fatal("image with a 503 succeeded")
	}
	if !strings.Contains(stderr, "Image generation error") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestHistoryDisabled(t *testing.T) {
	e := setupEnv(t, false)
	if _, _, err := e.run(t, "history", "list"); err == nil {
		t.Error("history list without history_dir succeeded")
	}
}

func TestBuildRequestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	os.WriteFile(path, []byte("mode: chat\ninput: hello world\n"), 0o644)

	inputFile = path
	defer func() { inputFile = "" }()

	req, err := buildRequest(studio.ModeTranslate, []string{"ignored"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Mode != studio.ModeTranslate || req.Input != "hello world" {
		t.Errorf("request = %+v", req)
	}
}

func TestExtFor(t *testing.T) {
	tests := map[string]string{
		"image/png":                ".png",
		"image/jpeg":               ".jpg",
		"audio/mpeg":               ".mp3",
		"audio/flac":               ".flac",
		"audio/x-wav":              ".wav",
		"application/octet-stream": ".bin",
	}
	for mimeType, want := range tests {
		if got := extFor(mimeType); got != want {
			t.Errorf("extFor(%q) = %q, want %q", mimeType, got, want)
		}
	}
}

func TestRecordStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"all ok", []string{"ok", "ok"}, "ok"},
		{"failed wins", []string{"ok", "failed", "skipped"}, "failed"},
		{"warned", []string{"skipped"}, "skipped"},
		{"unknown mode", nil, "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &history.Record{}
			for _, s := range tt.statuses {
				r.Stages = append(r.Stages, history.Stage{Status: s})
			}
			if got := recordStatus(r); got != tt.want {
				t.Errorf("recordStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a long\nmultiline input", 8); got != "a long …" {
		t.Errorf("truncate = %q", got)
	}
}
