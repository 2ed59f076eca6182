package commands

import (
	"context"
	"fmt"

	"github.com/haivivi/studio/pkg/cli"
	"github.com/haivivi/studio/pkg/gtts"
	"github.com/haivivi/studio/pkg/hfinference"
	"github.com/haivivi/studio/pkg/history"
	"github.com/haivivi/studio/pkg/storage"
	"github.com/haivivi/studio/pkg/studio"
)

// createHFClient creates an Inference API client from context configuration
func createHFClient(c *cli.Context) *hfinference.Client {
	var opts []hfinference.Option
	if c.BaseURL != "" {
		opts = append(opts, hfinference.WithBaseURL(c.BaseURL))
	}
	if c.RouterURL != "" {
		opts = append(opts, hfinference.WithRouterURL(c.RouterURL))
	}
	if d := c.TimeoutDuration(); d > 0 {
		opts = append(opts, hfinference.WithTimeout(d))
	}
	if c.MaxRetries > 0 {
		opts = append(opts, hfinference.WithRetry(c.MaxRetries))
	}
	if c.RateLimit > 0 {
		opts = append(opts, hfinference.WithRateLimit(c.RateLimit))
	}
	return hfinference.NewClient(c.Token(), opts...)
}

func createSpeechClient(c *cli.Context) *gtts.Client {
	var opts []gtts.Option
	if c.Speech.BaseURL != "" {
		opts = append(opts, gtts.WithBaseURL(c.Speech.BaseURL))
	}
	if c.Speech.Lang != "" {
		opts = append(opts, gtts.WithLang(c.Speech.Lang))
	}
	if d := c.TimeoutDuration(); d > 0 {
		opts = append(opts, gtts.WithTimeout(d))
	}
	if c.RateLimit > 0 {
		opts = append(opts, gtts.WithRateLimit(c.RateLimit))
	}
	return gtts.NewClient(opts...)
}

// createStore opens the store holding transient speech files.
func createStore(c *cli.Context, paths *cli.Paths) (storage.Store, error) {
	if c.Storage.S3Bucket != "" {
		return storage.NewS3FromConfig(storage.S3Config{
			Bucket:   c.Storage.S3Bucket,
			Prefix:   c.Storage.S3Prefix,
			Region:   c.Storage.S3Region,
			Endpoint: c.Storage.S3Endpoint,
		})
	}
	return storage.NewLocal(paths.ExpandHome(c.Storage.Dir))
}

// openHistory opens the run history, or returns nil when the context does
// not enable it.
func openHistory(c *cli.Context, paths *cli.Paths) (history.Store, error) {
	if c.HistoryDir == "" {
		return nil, nil
	}
	return history.OpenBadger(history.BadgerOptions{Dir: paths.ExpandHome(c.HistoryDir)})
}

// openStudio builds an orchestrator over live endpoints. The returned
// close function releases the history database.
func openStudio(ctx context.Context, c *cli.Context) (*studio.Orchestrator, func(), error) {
	paths, err := cli.NewPaths(appName)
	if err != nil {
		return nil, nil, err
	}

	store, err := createStore(c, paths)
	if err != nil {
		return nil, nil, fmt.Errorf("open audio storage: %w", err)
	}

	cfg := studio.LiveConfig{
		HF:               createHFClient(c),
		Speech:           createSpeechClient(c),
		Store:            store,
		ImageModel:       c.Models.Image,
		CaptionModel:     c.Models.Caption,
		ChatModel:        c.Models.Chat,
		TranslationModel: c.Models.Translation,
		MusicModel:       c.Models.Music,
	}
	if c.CaptionBackend == cli.CaptionBackendGemini {
		captioner, err := studio.NewGeminiCaptioner(ctx, c.GeminiAPIKey, c.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		cfg.Captioner = captioner
	}

	var opts []studio.Option
	hist, err := openHistory(c, paths)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	if hist != nil {
		opts = append(opts, studio.WithHistory(hist))
	}

	o, err := studio.New(studio.NewLiveAdapters(cfg), opts...)
	if err != nil {
		if hist != nil {
			hist.Close()
		}
		return nil, nil, err
	}

	printVerbose("Using context: %s", c.Name)
	closeFn := func() {
		if hist != nil {
			if err := hist.Close(); err != nil {
				cli.PrintError("close history: %v", err)
			}
		}
	}
	return o, closeFn, nil
}
