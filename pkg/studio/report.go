package studio

import (
	"time"

	"github.com/haivivi/studio/pkg/history"
)

// Request is one submission.
type Request struct {
	Mode  Mode   `json:"mode" yaml:"mode"`
	Input string `json:"input" yaml:"input"`
}

// StageResult is the outcome of one stage.
type StageResult struct {
	Stage  Stage
	Status Status
	Err    error
}

// Report summarizes a finished run.
type Report struct {
	ID        string
	Mode      Mode
	Input     string
	StartedAt time.Time
	Duration  time.Duration

	// Stages lists the stages of the mode in execution order.
	Stages []StageResult

	// Artifacts lists the artifacts in the order they were shown. Path is
	// cleared since transient files are gone once Run returns.
	Artifacts []Artifact

	Warnings []string

	// Err is set when no stage ran: ErrEmptyInput or ErrUnknownMode.
	Err error
}

// Status returns the status of stage, or "" when the mode has no such
// stage.
func (r *Report) Status(stage Stage) Status {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s.Status
		}
	}
	return ""
}

// Artifact returns the first artifact of kind k.
func (r *Report) Artifact(k Kind) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Kind == k {
			return a, true
		}
	}
	return Artifact{}, false
}

// Errors returns the stage errors in order.
func (r *Report) Errors() []error {
	var errs []error
	for _, s := range r.Stages {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}

// OK reports whether every stage succeeded and nothing was warned about.
func (r *Report) OK() bool {
	if len(r.Warnings) > 0 {
		return false
	}
	for _, s := range r.Stages {
		if s.Status != StatusOK {
			return false
		}
	}
	return true
}

func (r *Report) set(stage Stage, status Status, err error) {
	for i := range r.Stages {
		if r.Stages[i].Stage == stage {
			r.Stages[i].Status = status
			r.Stages[i].Err = err
			return
		}
	}
}

// Record converts the report to a history record. Binary artifacts are
// reduced to their type and size.
func (r *Report) Record() *history.Record {
	rec := &history.Record{
		ID:        r.ID,
		Mode:      string(r.Mode),
		Input:     r.Input,
		StartedAt: r.StartedAt,
		Duration:  r.Duration,
	}
	for _, s := range r.Stages {
		st := history.Stage{Name: string(s.Stage), Status: string(s.Status)}
		if s.Err != nil {
			st.Error = s.Err.Error()
		}
		rec.Stages = append(rec.Stages, st)
	}
	for _, a := range r.Artifacts {
		ha := history.Artifact{Kind: string(a.Kind), MIMEType: a.MIMEType, Size: a.Size()}
		if !a.Kind.Binary() {
			ha.Text = a.Text
		}
		rec.Artifacts = append(rec.Artifacts, ha)
	}
	return rec
}
