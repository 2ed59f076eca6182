package studio_test

import (
	"errors"
	"testing"

	"github.com/haivivi/studio/pkg/studio"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want studio.Mode
	}{
		{"image", studio.ModeImage},
		{" Story ", studio.ModeStory},
		{"full-story-pipeline", studio.ModeStory},
		{"single-image", studio.ModeImage},
		{"text-to-speech", studio.ModeSpeech},
		{"CHAT", studio.ModeChat},
		{"translate", studio.ModeTranslate},
		{"music", studio.ModeMusic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := studio.ParseMode(tt.in)
			if err != nil {
				t.Fatalf("ParseMode(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := studio.ParseMode("video"); !errors.Is(err, studio.ErrUnknownMode) {
		t.Errorf("ParseMode(video) err = %v, want ErrUnknownMode", err)
	}
}

func TestModes(t *testing.T) {
	modes := studio.Modes()
	if len(modes) != 6 {
		t.Fatalf("len(Modes) = %d, want 6", len(modes))
	}
	for _, m := range modes {
		if m.Title == "" || m.EmptyInput == "" || len(m.Stages) == 0 {
			t.Errorf("incomplete mode info: %+v", m)
		}
	}
	story, _ := studio.ModeStory.Info()
	want := []studio.Stage{studio.StageImage, studio.StageCaption, studio.StageStory, studio.StageTranslation, studio.StageSpeech}
	if len(story.Stages) != len(want) {
		t.Fatalf("story stages = %v", story.Stages)
	}
	for i := range want {
		if story.Stages[i] != want[i] {
			t.Errorf("story stage %d = %q, want %q", i, story.Stages[i], want[i])
		}
	}
}

func TestModesReturnsCopy(t *testing.T) {
	modes := studio.Modes()
	for i := range modes {
		modes[i].Stages[0] = "tampered"
	}
	for _, m := range studio.Modes() {
		if m.Stages[0] == "tampered" {
			t.Fatalf("%s stages changed through Modes: %v", m.Mode, m.Stages)
		}
	}
	info, _ := studio.ModeChat.Info()
	info.Stages[0] = "tampered"
	if again, _ := studio.ModeChat.Info(); again.Stages[0] != studio.StageChat {
		t.Errorf("chat stages changed through Info: %v", again.Stages)
	}
}

func TestModeAliases(t *testing.T) {
	want := map[studio.Mode][]string{
		studio.ModeStory:  {"full-story-pipeline", "pipeline"},
		studio.ModeSpeech: {"text-to-speech", "tts"},
		studio.ModeChat:   nil,
	}
	for mode, aliases := range want {
		got := mode.Aliases()
		if len(got) != len(aliases) {
			t.Fatalf("%s aliases = %q, want %q", mode, got, aliases)
		}
		for i, a := range got {
			if a != aliases[i] {
				t.Errorf("%s alias %d = %q, want %q", mode, i, a, aliases[i])
			}
			if m, err := studio.ParseMode(a); err != nil || m != mode {
				t.Errorf("ParseMode(%q) = %q, %v", a, m, err)
			}
		}
	}
}

func TestStageErrorMessages(t *testing.T) {
	tests := []struct {
		err  *studio.StageError
		want string
	}{
		{&studio.StageError{Stage: studio.StageImage, Err: errors.New("503")}, "Image generation error: 503"},
		{&studio.StageError{Stage: studio.StageCaption, Err: studio.ErrNoCaption}, "Unable to generate caption for the image."},
		{&studio.StageError{Stage: studio.StageChat, Err: errors.New("x")}, "Chatbot error: x"},
		{&studio.StageError{Stage: studio.StageSpeech, Err: errors.New("x")}, "Text-to-Speech error: x"},
		{&studio.StageError{Stage: studio.StageTranslation, Err: errors.New("x")}, "Translation error: x"},
		{&studio.StageError{Stage: studio.StageMusic, Err: errors.New("x")}, "Music generation error: x"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
