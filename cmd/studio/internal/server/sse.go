package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haivivi/studio/pkg/studio"
)

// SSE event names.
const (
	eventProgress = "progress"
	eventArtifact = "artifact"
	eventWarning  = "warning"
	eventError    = "error"
	eventDone     = "done"
)

type event struct {
	name string
	data any
}

// streamSink forwards sink calls to the SSE writer. All methods run on the
// goroutine executing the run.
type streamSink struct {
	ctx     context.Context
	srv     *Server
	out     chan<- event
	started map[studio.Stage]time.Time
}

func newStreamSink(ctx context.Context, srv *Server, out chan<- event) *streamSink {
	return &streamSink{ctx: ctx, srv: srv, out: out, started: make(map[studio.Stage]time.Time)}
}

// send drops the event once the client is gone. A sink without out only
// times stages.
func (s *streamSink) send(e event) {
	if s.out == nil {
		return
	}
	select {
	case s.out <- e:
	case <-s.ctx.Done():
	}
}

func (s *streamSink) observe(stage studio.Stage) {
	start, ok := s.started[stage]
	if !ok {
		return
	}
	delete(s.started, stage)
	stageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}

func (s *streamSink) Begin(stage studio.Stage) {
	s.started[stage] = time.Now()
	s.send(event{eventProgress, gin.H{"stage": stage, "message": stage.Progress()}})
}

func (s *streamSink) Show(a studio.Artifact) {
	s.observe(a.Stage)
	if s.out != nil {
		s.send(event{eventArtifact, s.srv.viewArtifact(a)})
	}
}

func (s *streamSink) Warn(msg string) {
	s.send(event{eventWarning, gin.H{"message": msg}})
}

func (s *streamSink) Fail(err *studio.StageError) {
	s.observe(err.Stage)
	s.send(event{eventError, gin.H{"stage": err.Stage, "message": err.Error()}})
}

var _ studio.Sink = (*streamSink)(nil)
