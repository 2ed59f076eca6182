package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/haivivi/studio/pkg/history"
)

// DefaultStoryPrompt turns a caption into the story prompt.
const DefaultStoryPrompt = "Write a creative and useful story about: %s."

// Orchestrator runs requests against a fixed set of adapters. It holds no
// per-run state and is safe for concurrent use.
type Orchestrator struct {
	adapters    Adapters
	storyPrompt string
	history     history.Store
	now         func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithHistory records every run in store.
func WithHistory(store history.Store) Option {
	return func(o *Orchestrator) {
		o.history = store
	}
}

// WithStoryPrompt sets the fmt format, with one %s for the caption, used
// to ask for a story.
func WithStoryPrompt(format string) Option {
	return func(o *Orchestrator) {
		o.storyPrompt = format
	}
}

// New creates an Orchestrator.
func New(adapters Adapters, opts ...Option) (*Orchestrator, error) {
	if adapters.empty() {
		return nil, errors.New("studio: no capability adapters configured")
	}
	o := &Orchestrator{
		adapters:    adapters,
		storyPrompt: DefaultStoryPrompt,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if strings.Count(o.storyPrompt, "%s") != 1 {
		return nil, fmt.Errorf("studio: story prompt %q must contain exactly one %%s", o.storyPrompt)
	}
	return o, nil
}

// Run executes req and reports every step to sink as it happens. Failures
// are reported, never returned.
func (o *Orchestrator) Run(ctx context.Context, req Request, sink Sink) *Report {
	if sink == nil {
		sink = NopSink{}
	}
	r := &run{
		o:    o,
		ctx:  ctx,
		sink: sink,
		report: &Report{
			ID:        history.NewID(),
			Mode:      req.Mode,
			Input:     req.Input,
			StartedAt: o.now(),
		},
	}

	info, ok := req.Mode.Info()
	if !ok {
		r.report.Err = fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
		msg := r.report.Err.Error()
		r.report.Warnings = append(r.report.Warnings, msg)
		sink.Warn(msg)
		return r.finish()
	}
	for _, s := range info.Stages {
		r.report.Stages = append(r.report.Stages, StageResult{Stage: s, Status: StatusPending})
	}

	input := strings.TrimSpace(req.Input)
	if input == "" {
		r.report.Err = ErrEmptyInput
		r.report.Warnings = append(r.report.Warnings, info.EmptyInput)
		sink.Warn(info.EmptyInput)
		r.skip(info.Stages...)
		return r.finish()
	}

	slog.Debug("studio: run", "id", r.report.ID, "mode", req.Mode, "input_len", len(input))

	switch req.Mode {
	case ModeImage:
		r.image(input)
	case ModeStory:
		r.story(input)
	case ModeChat:
		r.chat(input)
	case ModeTranslate:
		r.translate(input)
	case ModeSpeech:
		r.speech(input)
	case ModeMusic:
		r.music(input)
	}
	return r.finish()
}

// run carries the state of one Run call.
type run struct {
	o      *Orchestrator
	ctx    context.Context
	sink   Sink
	report *Report
}

func (r *run) finish() *Report {
	r.report.Duration = r.o.now().Sub(r.report.StartedAt)
	if r.o.history != nil {
		if err := r.o.history.Put(context.WithoutCancel(r.ctx), r.report.Record()); err != nil {
			slog.Warn("studio: record run", "id", r.report.ID, "err", err)
		}
	}
	slog.Debug("studio: run finished", "id", r.report.ID, "ok", r.report.OK(), "elapsed", r.report.Duration)
	return r.report
}

func (r *run) begin(stage Stage) {
	slog.Debug("studio: stage begin", "id", r.report.ID, "stage", stage)
	r.sink.Begin(stage)
}

func (r *run) show(a Artifact) {
	r.report.set(a.Stage, StatusOK, nil)
	kept := a
	kept.Path = ""
	r.report.Artifacts = append(r.report.Artifacts, kept)
	slog.Debug("studio: stage done", "id", r.report.ID, "stage", a.Stage, "kind", a.Kind, "size", a.Size())
	r.sink.Show(a)
}

func (r *run) fail(stage Stage, err error) {
	se := &StageError{Stage: stage, Err: err}
	r.report.set(stage, StatusFailed, se)
	slog.Debug("studio: stage failed", "id", r.report.ID, "stage", stage, "err", err)
	r.sink.Fail(se)
}

func (r *run) skip(stages ...Stage) {
	for _, s := range stages {
		r.report.set(s, StatusSkipped, nil)
	}
}

// story runs image -> caption -> story -> {translation, speech}. The
// translation and the narration each depend only on the story.
func (r *run) story(description string) {
	image, ok := r.image(description)
	if !ok {
		r.skip(StageCaption, StageStory, StageTranslation, StageSpeech)
		return
	}

	caption, ok := r.caption(image)
	if !ok {
		r.skip(StageStory, StageTranslation, StageSpeech)
		return
	}

	story, ok := r.writeStory(caption)
	if !ok {
		r.skip(StageTranslation, StageSpeech)
		return
	}

	r.translate(story)
	r.speech(story)
}

func (r *run) image(prompt string) ([]byte, bool) {
	if r.o.adapters.Image == nil {
		r.fail(StageImage, ErrNoAdapter)
		return nil, false
	}
	r.begin(StageImage)
	data, err := r.o.adapters.Image.SynthesizeImage(r.ctx, prompt)
	if err == nil && len(data) == 0 {
		err = ErrEmptyResult
	}
	if err != nil {
		r.fail(StageImage, err)
		return nil, false
	}
	r.show(Artifact{Stage: StageImage, Kind: KindImage, Data: data, MIMEType: sniffMIME(data)})
	return data, true
}

func (r *run) caption(image []byte) (string, bool) {
	if r.o.adapters.Captioner == nil {
		r.fail(StageCaption, ErrNoAdapter)
		return "", false
	}
	r.begin(StageCaption)
	caption, err := r.o.adapters.Captioner.Caption(r.ctx, image)
	caption = strings.TrimSpace(caption)
	if err == nil && caption == "" {
		err = ErrNoCaption
	}
	if err != nil {
		r.fail(StageCaption, err)
		return "", false
	}
	r.show(Artifact{Stage: StageCaption, Kind: KindCaption, Text: caption})
	return caption, true
}

// writeStory asks for a story about caption. A failed call is reported
// and the apology stands in for the story, so translation and narration
// still run on it.
func (r *run) writeStory(caption string) (string, bool) {
	if r.o.adapters.Chat == nil {
		r.fail(StageStory, ErrNoAdapter)
		return "", false
	}
	r.begin(StageStory)
	story, err := r.o.adapters.Chat.Chat(r.ctx, fmt.Sprintf(r.o.storyPrompt, caption))
	if err == nil && strings.TrimSpace(story) == "" {
		err = ErrEmptyResult
	}
	if err != nil {
		r.fail(StageStory, err)
		r.apologize(StageStory, KindStory)
		return ChatApology, true
	}
	r.show(Artifact{Stage: StageStory, Kind: KindStory, Text: story})
	return story, true
}

// apologize shows ChatApology in place of a response without marking the
// failed stage ok.
func (r *run) apologize(stage Stage, kind Kind) {
	a := Artifact{Stage: stage, Kind: kind, Text: ChatApology}
	r.report.Artifacts = append(r.report.Artifacts, a)
	r.sink.Show(a)
}

// chat answers prompt. A failed call is reported and the apology shown in
// place of the response.
func (r *run) chat(prompt string) {
	if r.o.adapters.Chat == nil {
		r.fail(StageChat, ErrNoAdapter)
		return
	}
	r.begin(StageChat)
	resp, err := r.o.adapters.Chat.Chat(r.ctx, prompt)
	if err == nil && strings.TrimSpace(resp) == "" {
		err = ErrEmptyResult
	}
	if err != nil {
		r.fail(StageChat, err)
		r.apologize(StageChat, KindResponse)
		return
	}
	r.show(Artifact{Stage: StageChat, Kind: KindResponse, Text: resp})
}

func (r *run) translate(text string) {
	if r.o.adapters.Translator == nil {
		r.fail(StageTranslation, ErrNoAdapter)
		return
	}
	r.begin(StageTranslation)
	out, err := r.o.adapters.Translator.Translate(r.ctx, text)
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyResult
	}
	if err != nil {
		r.fail(StageTranslation, err)
		return
	}
	r.show(Artifact{Stage: StageTranslation, Kind: KindTranslation, Text: out})
}

// speech narrates text. The transient audio is released once the sink has
// seen it, and on every failure path after synthesis.
func (r *run) speech(text string) {
	if r.o.adapters.Speech == nil {
		r.fail(StageSpeech, ErrNoAdapter)
		return
	}
	r.begin(StageSpeech)
	audio, err := r.o.adapters.Speech.SynthesizeSpeech(r.ctx, text)
	defer func() {
		if err := audio.Release(r.ctx); err != nil {
			slog.Warn("studio: release speech audio", "path", audio.Path, "err", err)
		}
	}()
	if err == nil && (audio == nil || len(audio.Data) == 0) {
		err = ErrEmptyResult
	}
	if err != nil {
		r.fail(StageSpeech, err)
		return
	}
	mimeType := audio.MIMEType
	if mimeType == "" {
		mimeType = sniffMIME(audio.Data)
	}
	r.show(Artifact{Stage: StageSpeech, Kind: KindSpeech, Data: audio.Data, MIMEType: mimeType, Path: audio.Path})
}

func (r *run) music(prompt string) {
	if r.o.adapters.Music == nil {
		r.fail(StageMusic, ErrNoAdapter)
		return
	}
	r.begin(StageMusic)
	data, err := r.o.adapters.Music.GenerateMusic(r.ctx, prompt)
	if err == nil && len(data) == 0 {
		err = ErrEmptyResult
	}
	if err != nil {
		r.fail(StageMusic, err)
		return
	}
	r.show(Artifact{Stage: StageMusic, Kind: KindMusic, Data: data, MIMEType: sniffMIME(data)})
}
