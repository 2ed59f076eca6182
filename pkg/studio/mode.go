package studio

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects a workflow.
type Mode string

const (
	ModeImage     Mode = "image"
	ModeStory     Mode = "story"
	ModeChat      Mode = "chat"
	ModeTranslate Mode = "translate"
	ModeSpeech    Mode = "speech"
	ModeMusic     Mode = "music"
)

// ModeInfo describes a mode for listings and prompts.
type ModeInfo struct {
	Mode        Mode    `json:"mode" yaml:"mode"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	InputLabel  string  `json:"input_label" yaml:"input_label"`
	Stages      []Stage `json:"stages" yaml:"stages"`

	// EmptyInput is the warning shown when the input is blank.
	EmptyInput string `json:"-" yaml:"-"`
}

var modeInfos = []ModeInfo{
	{
		Mode:        ModeStory,
		Title:       "Create an Image and Story from Your Description",
		Description: "Describe the image you want, and we'll generate it for you along with a creative story.",
		InputLabel:  "Describe the image you want",
		Stages:      []Stage{StageImage, StageCaption, StageStory, StageTranslation, StageSpeech},
		EmptyInput:  "Please provide a description to generate the image.",
	},
	{
		Mode:        ModeChat,
		Title:       "Interactive AI Chat",
		Description: "Ask the AI any question, and it will respond with a creative answer.",
		InputLabel:  "Enter your question or prompt",
		Stages:      []Stage{StageChat},
		EmptyInput:  "Please enter a prompt to get started!",
	},
	{
		Mode:        ModeSpeech,
		Title:       "Convert Text to Speech",
		Description: "Enter text to convert it into natural-sounding speech.",
		InputLabel:  "Enter the text you want to convert to speech",
		Stages:      []Stage{StageSpeech},
		EmptyInput:  "Please enter the text to convert.",
	},
	{
		Mode:        ModeImage,
		Title:       "Generate an Image",
		Description: "Describe the image, and we will generate it for you.",
		InputLabel:  "Describe the image you want",
		Stages:      []Stage{StageImage},
		EmptyInput:  "Please provide a description to generate the image.",
	},
	{
		Mode:        ModeTranslate,
		Title:       "Translate to Arabic",
		Description: "Enter the text you want to translate from English to Arabic.",
		InputLabel:  "Enter the text you want to translate",
		Stages:      []Stage{StageTranslation},
		EmptyInput:  "Please enter the text to translate.",
	},
	{
		Mode:        ModeMusic,
		Title:       "Generate Music",
		Description: "Enter a description of the music you want, and the AI will generate it for you.",
		InputLabel:  "Describe the music genre or vibe",
		Stages:      []Stage{StageMusic},
		EmptyInput:  "Please provide a description to generate music.",
	},
}

// Modes returns all modes in menu order. The result is a copy.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(modeInfos))
	for i, info := range modeInfos {
		info.Stages = slices.Clone(info.Stages)
		out[i] = info
	}
	return out
}

// Info returns the description of m.
func (m Mode) Info() (ModeInfo, bool) {
	for _, info := range modeInfos {
		if info.Mode == m {
			info.Stages = slices.Clone(info.Stages)
			return info, true
		}
	}
	return ModeInfo{}, false
}

func (m Mode) String() string {
	return string(m)
}

var modeAliases = map[string]Mode{
	"single-image":        ModeImage,
	"full-story-pipeline": ModeStory,
	"pipeline":            ModeStory,
	"text-to-speech":      ModeSpeech,
	"tts":                 ModeSpeech,
	"translation":         ModeTranslate,
}

// Aliases returns the alternative names ParseMode accepts for m, sorted.
func (m Mode) Aliases() []string {
	var out []string
	for alias, mode := range modeAliases {
		if mode == m {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// ParseMode parses a mode name, case-insensitively. A few long-form
// aliases such as "text-to-speech" are accepted.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if m, ok := modeAliases[name]; ok {
		return m, nil
	}
	if _, ok := Mode(name).Info(); ok {
		return Mode(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
