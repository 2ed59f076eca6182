package server

import (
	"github.com/haivivi/studio/pkg/studio"
)

type artifactView struct {
	Stage    studio.Stage `json:"stage"`
	Kind     studio.Kind  `json:"kind"`
	Title    string       `json:"title"`
	Text     string       `json:"text,omitempty"`
	MIMEType string       `json:"mime_type,omitempty"`
	Size     int          `json:"size"`

	// URL downloads binary artifacts.
	URL string `json:"url,omitempty"`
}

type stageView struct {
	Stage  studio.Stage  `json:"stage"`
	Status studio.Status `json:"status"`
	Error  string        `json:"error,omitempty"`
}

type runView struct {
	ID         string         `json:"id"`
	Mode       studio.Mode    `json:"mode"`
	OK         bool           `json:"ok"`
	DurationMS int64          `json:"duration_ms"`
	Stages     []stageView    `json:"stages"`
	Artifacts  []artifactView `json:"artifacts,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// viewArtifact describes a, parking binary payloads in the cache.
func (s *Server) viewArtifact(a studio.Artifact) artifactView {
	v := artifactView{
		Stage:    a.Stage,
		Kind:     a.Kind,
		Title:    a.Kind.Title(),
		Text:     a.Text,
		MIMEType: a.MIMEType,
		Size:     a.Size(),
	}
	if a.Kind.Binary() {
		v.URL = "/v1/artifacts/" + s.artifacts.put(a)
	}
	return v
}

func viewRun(r *studio.Report, artifacts []artifactView) runView {
	v := runView{
		ID:         r.ID,
		Mode:       r.Mode,
		OK:         r.OK(),
		DurationMS: r.Duration.Milliseconds(),
		Stages:     make([]stageView, 0, len(r.Stages)),
		Artifacts:  artifacts,
		Warnings:   r.Warnings,
	}
	for _, st := range r.Stages {
		sv := stageView{Stage: st.Stage, Status: st.Status}
		if st.Err != nil {
			sv.Error = st.Err.Error()
		}
		v.Stages = append(v.Stages, sv)
	}
	return v
}

// recordRun counts the outcome of a finished run.
func recordRun(r *studio.Report) {
	result := "ok"
	switch {
	case len(r.Errors()) > 0:
		result = "failed"
	case len(r.Warnings) > 0:
		result = "warned"
	}
	runsTotal.WithLabelValues(string(r.Mode), result).Inc()
	for _, st := range r.Stages {
		stagesTotal.WithLabelValues(string(r.Mode), string(st.Stage), string(st.Status)).Inc()
	}
}
