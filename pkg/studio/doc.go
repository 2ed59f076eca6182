// Package studio chains hosted AI capabilities into creative workflows.
//
// An Orchestrator runs one Request in one Mode. In ModeStory it turns a
// description into an image, captions the image, writes a story about the
// caption, then translates and narrates the story:
//
//	image -> caption -> story -> {translation, speech}
//
// Every capability sits behind a one-method interface (ImageSynthesizer,
// Captioner, ChatGenerator, Translator, SpeechSynthesizer, MusicGenerator).
// NewLiveAdapters binds them to the Hugging Face Inference API and Google
// Translate speech; tests bind them to canned fakes.
//
// Artifacts are handed to a Sink the moment their stage completes. A failed
// stage is reported to the Sink and every stage depending on it is skipped;
// Run itself never returns an error.
//
//	o, err := studio.New(studio.NewLiveAdapters(cfg))
//	report := o.Run(ctx, studio.Request{Mode: studio.ModeStory, Input: "a red fox in snow"}, sink)
package studio
