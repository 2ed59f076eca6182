// Package gtts synthesizes speech through the Google Translate
// text-to-speech endpoint.
//
// The endpoint accepts at most about 100 characters per request, so longer
// text is split into parts, preferring clause punctuation over plain word
// boundaries, and the MP3 segments are concatenated in order.
//
// # Quick Start
//
//	client := gtts.NewClient()
//	audio, err := client.Synthesize(ctx, "Hello, world!")
//
// # Streaming
//
//	for part, err := range client.Stream(ctx, longText) {
//	    if err != nil {
//	        return err
//	    }
//	    w.Write(part)
//	}
//
// # Options
//
//	client := gtts.NewClient(
//	    gtts.WithLang("ar"),
//	    gtts.WithRateLimit(2),
//	)
package gtts
