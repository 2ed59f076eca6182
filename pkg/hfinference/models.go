package hfinference

// Text-to-image models
const (
	// ModelFluxDev is black-forest-labs/FLUX.1-dev.
	ModelFluxDev = "black-forest-labs/FLUX.1-dev"

	// ModelFluxSchnell is black-forest-labs/FLUX.1-schnell, the faster distilled variant.
	ModelFluxSchnell = "black-forest-labs/FLUX.1-schnell"
)

// Image-to-text models
const (
	// ModelViTGPT2Caption is nlpconnect/vit-gpt2-image-captioning.
	ModelViTGPT2Caption = "nlpconnect/vit-gpt2-image-captioning"

	// ModelBLIPCaption is Salesforce/blip-image-captioning-large.
	ModelBLIPCaption = "Salesforce/blip-image-captioning-large"
)

// Translation models
const (
	// ModelOpusMTEnAr is Helsinki-NLP/opus-mt-en-ar (English to Arabic).
	ModelOpusMTEnAr = "Helsinki-NLP/opus-mt-en-ar"
)

// Text-to-audio models
const (
	// ModelMusicGenSmall is facebook/musicgen-small.
	ModelMusicGenSmall = "facebook/musicgen-small"
)

// Chat models
const (
	// ModelLlama3_8BInstruct is meta-llama/Meta-Llama-3-8B-Instruct.
	ModelLlama3_8BInstruct = "meta-llama/Meta-Llama-3-8B-Instruct"
)
