// Package hfinference provides a Go client for the Hugging Face Inference API.
//
// Task endpoints (text-to-image, image-to-text, translation, text-to-audio)
// are served under /models/{model} and exchange either JSON or raw binary
// bodies. Chat completions go through the OpenAI-compatible router.
//
// # Basic Usage
//
//	client := hfinference.NewClient("hf_xxx")
//
//	// Text to image
//	img, err := client.Image.Generate(ctx, &hfinference.ImageRequest{
//	    Inputs: "a red fox in snow",
//	})
//
//	// Image to text
//	caption, err := client.Caption.Describe(ctx, &hfinference.CaptionRequest{
//	    Image: img.Data,
//	})
//
//	// Chat
//	resp, err := client.Chat.Complete(ctx, &hfinference.ChatRequest{
//	    Prompt:    "What is 2+2?",
//	    MaxTokens: 1000,
//	})
//
// # Error Handling
//
//	img, err := client.Image.Generate(ctx, req)
//	if err != nil {
//	    if e, ok := hfinference.AsError(err); ok && e.IsModelLoading() {
//	        // The model is cold; e.EstimatedTime says how long to wait.
//	    }
//	    return err
//	}
//
// # Configuration
//
//	client := hfinference.NewClient("hf_xxx",
//	    hfinference.WithBaseURL("https://api-inference.huggingface.co"),
//	    hfinference.WithTimeout(120*time.Second),
//	    hfinference.WithRetry(2),
//	    hfinference.WithRateLimit(1),
//	)
//
// Requests are not retried unless WithRetry is set.
package hfinference
