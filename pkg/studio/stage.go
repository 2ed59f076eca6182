package studio

// Stage is one capability call within a run.
type Stage string

const (
	StageImage       Stage = "image"
	StageCaption     Stage = "caption"
	StageStory       Stage = "story"
	StageChat        Stage = "chat"
	StageTranslation Stage = "translation"
	StageSpeech      Stage = "speech"
	StageMusic       Stage = "music"
)

type stageText struct {
	progress string
	errorTag string
}

var stageTexts = map[Stage]stageText{
	StageImage:       {"Generating image...", "Image generation error"},
	StageCaption:     {"Generating caption...", "Captioning error"},
	StageStory:       {"Generating story...", "Chatbot error"},
	StageChat:        {"AI is generating a response...", "Chatbot error"},
	StageTranslation: {"Translating text...", "Translation error"},
	StageSpeech:      {"Converting text to speech...", "Text-to-Speech error"},
	StageMusic:       {"Generating music...", "Music generation error"},
}

// Progress returns the line shown while the stage runs.
func (s Stage) Progress() string {
	return stageTexts[s].progress
}

func (s Stage) errorTag() string {
	if t, ok := stageTexts[s]; ok {
		return t.errorTag
	}
	return "Error"
}

func (s Stage) String() string {
	return string(s)
}

// Status is the outcome of a stage.
type Status string

const (
	StatusPending Status = "pending"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)
