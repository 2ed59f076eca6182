package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haivivi/studio/pkg/studio"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-image")

func newRunner(t *testing.T, imageErr error) *studio.Orchestrator {
	t.Helper()
	o, err := studio.New(studio.Adapters{
		Image: studio.ImageSynthesizerFunc(func(context.Context, string) ([]byte, error) {
			if imageErr != nil {
				return nil, imageErr
			}
			return pngBytes, nil
		}),
		Captioner: studio.CaptionerFunc(func(context.Context, []byte) (string, error) {
			return "a fox in the snow", nil
		}),
		Chat: studio.ChatGeneratorFunc(func(_ context.Context, prompt string) (string, error) {
			return "story of " + prompt, nil
		}),
		Translator: studio.TranslatorFunc(func(context.Context, string) (string, error) {
			return "قصة", nil
		}),
		Speech: studio.SpeechSynthesizerFunc(func(context.Context, string) (*studio.Audio, error) {
			return studio.NewAudio([]byte("ID3audio"), "audio/mpeg", "", nil), nil
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func newTestServer(t *testing.T, imageErr error) (*Server, *httptest.Server) {
	t.Helper()
	s := New(newRunner(t, imageErr), Config{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

type sseEvent struct {
	name string
	data map[string]any
}

func readEvents(t *testing.T, r io.Reader) []sseEvent {
	t.Helper()
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	var events []sseEvent
	for _, block := range strings.Split(string(body), "\n\n") {
		var e sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event:"):
				e.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &e.data); err != nil {
					t.Fatalf("decode %q: %v", line, err)
				}
			}
		}
		if e.name != "" {
			events = append(events, e)
		}
	}
	return events
}

func postRun(t *testing.T, ts *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/runs"+query, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func names(events []sseEvent) []string {
	var out []string
	for _, e := range events {
		out = append(out, e.name)
	}
	return out
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestListModes(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/v1/modes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got struct {
		Modes []studio.ModeInfo `json:"modes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Modes) != 6 || got.Modes[0].Mode != studio.ModeStory {
		t.Errorf("modes = %+v", got.Modes)
	}
}

func TestStreamStory(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp := postRun(t, ts, "", `{"mode":"story","input":"a red fox in snow"}`)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q", ct)
	}
	events := readEvents(t, resp.Body)

	want := []string{
		"progress", "artifact", "progress", "artifact", "progress", "artifact",
		"progress", "artifact", "progress", "artifact", "done",
	}
	if strings.Join(names(events), ",") != strings.Join(want, ",") {
		t.Fatalf("events = %v, want %v", names(events), want)
	}

	done := events[len(events)-1].data
	if done["ok"] != true || done["mode"] != "story" {
		t.Errorf("done = %v", done)
	}

	image := events[1].data
	url, _ := image["url"].(string)
	if image["kind"] != "image" || !strings.HasPrefix(url, "/v1/artifacts/") {
		t.Fatalf("image event = %v", image)
	}
	if caption := events[3].data; caption["text"] != "a fox in the snow" || caption["url"] != nil {
		t.Errorf("caption event = %v", caption)
	}

	got, err := http.Get(ts.URL + url)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Body.Close()
	data, _ := io.ReadAll(got.Body)
	if got.StatusCode != http.StatusOK || !bytes.Equal(data, pngBytes) {
		t.Errorf("artifact = %d %q", got.StatusCode, data)
	}
	if ct := got.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("artifact content type = %q", ct)
	}
}

func TestStreamImageFailure(t *testing.T) {
	_, ts := newTestServer(t, errors.New("model unavailable"))
	events := readEvents(t, postRun(t, ts, "", `{"mode":"story","input":"a red fox"}`).Body)

	if got := strings.Join(names(events), ","); got != "progress,error,done" {
		t.Fatalf("events = %s", got)
	}
	if msg := events[1].data["message"]; msg != "Image generation error: model unavailable" {
		t.Errorf("message = %v", msg)
	}
	if events[2].data["ok"] != false {
		t.Errorf("done = %v", events[2].data)
	}
}

func TestStreamEmptyInput(t *testing.T) {
	_, ts := newTestServer(t, nil)
	events := readEvents(t, postRun(t, ts, "", `{"mode":"translate","input":"   "}`).Body)

	if got := strings.Join(names(events), ","); got != "warning,done" {
		t.Fatalf("events = %s", got)
	}
	if msg := events[0].data["message"]; msg != "Please enter the text to translate." {
		t.Errorf("warning = %v", msg)
	}
}

func TestSyncRun(t *testing.T) {
	s, ts := newTestServer(t, nil)
	resp := postRun(t, ts, "?stream=false", `{"mode":"tts","input":"hello there"}`)

	var got runView
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.OK || got.Mode != studio.ModeSpeech || len(got.Artifacts) != 1 {
		t.Fatalf("run = %+v", got)
	}
	a := got.Artifacts[0]
	if a.Kind != studio.KindSpeech || a.MIMEType != "audio/mpeg" || a.URL == "" {
		t.Errorf("artifact = %+v", a)
	}
	if s.artifacts.len() != 1 {
		t.Errorf("cached artifacts = %d, want 1", s.artifacts.len())
	}
}

func TestCreateRunBadRequest(t *testing.T) {
	_, ts := newTestServer(t, nil)
	for _, body := range []string{`{"mode":"video","input":"x"}`, `{"input":"x"}`, `not json`} {
		if resp := postRun(t, ts, "", body); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestArtifactNotFound(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/v1/artifacts/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestArtifactExpiry(t *testing.T) {
	c := newArtifactCache(20 * time.Millisecond)
	id := c.put(studio.Artifact{Kind: studio.KindMusic, Data: []byte("fLaC")})
	if _, ok := c.get(id); !ok {
		t.Fatal("artifact missing right after put")
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.get(id); ok {
		t.Error("artifact still cached after its TTL")
	}
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer(t, nil)
	postRun(t, ts, "?stream=false", `{"mode":"chat","input":"hi"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, name := range []string{"studio_run_total", "studio_stage_total", "studio_http_requests_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics missing %s", name)
		}
	}
}

func TestCORS(t *testing.T) {
	_, ts := newTestServer(t, nil)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/modes", nil)
	req.Header.Set("Origin", "https://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q, want *", got)
	}
}

func TestRunShutsDown(t *testing.T) {
	s := New(newRunner(t, nil), Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
