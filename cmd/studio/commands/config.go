package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/studio/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

Contexts allow you to manage multiple endpoint configurations,
similar to kubectl's context management.

Configuration is stored in ~/.giztoy/studio/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

The API key may be omitted when $HF_TOKEN is set.

Example:
  studio config add-context default --api-key hf_xxx
  studio config add-context local --api-key hf_xxx --storage-dir /tmp/studio --history-dir ~/.giztoy/studio/history
  studio config add-context cloud --api-key hf_xxx --s3-bucket studio-audio --s3-region eu-west-1
  studio config add-context gem --api-key hf_xxx --caption-backend gemini --gemini-api-key KEY`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		str := func(name string) string {
			v, _ := f.GetString(name)
			return v
		}
		timeout, err := f.GetInt("timeout")
		if err != nil {
			return fmt.Errorf("failed to read 'timeout' flag: %w", err)
		}
		maxRetries, err := f.GetInt("max-retries")
		if err != nil {
			return fmt.Errorf("failed to read 'max-retries' flag: %w", err)
		}
		rateLimit, err := f.GetFloat64("rate-limit")
		if err != nil {
			return fmt.Errorf("failed to read 'rate-limit' flag: %w", err)
		}

		backend := str("caption-backend")
		switch backend {
		case "", cli.CaptionBackendHF, cli.CaptionBackendGemini:
		default:
			return fmt.Errorf("--caption-backend must be %q or %q", cli.CaptionBackendHF, cli.CaptionBackendGemini)
		}

		ctx := &cli.Context{
			APIKey:     str("api-key"),
			BaseURL:    str("base-url"),
			RouterURL:  str("router-url"),
			Timeout:    timeout,
			MaxRetries: maxRetries,
			RateLimit:  rateLimit,
			Models: cli.Models{
				Image:       str("image-model"),
				Caption:     str("caption-model"),
				Translation: str("translation-model"),
				Music:       str("music-model"),
				Chat:        str("chat-model"),
			},
			Speech: cli.SpeechConfig{
				BaseURL: str("speech-base-url"),
				Lang:    str("speech-lang"),
			},
			CaptionBackend: backend,
			GeminiAPIKey:   str("gemini-api-key"),
			GeminiModel:    str("gemini-model"),
			Storage: cli.StorageConfig{
				Dir:        str("storage-dir"),
				S3Bucket:   str("s3-bucket"),
				S3Prefix:   str("s3-prefix"),
				S3Region:   str("s3-region"),
				S3Endpoint: str("s3-endpoint"),
			},
			HistoryDir: str("history-dir"),
		}
		if ctx.Token() == "" {
			return fmt.Errorf("--api-key is required when $%s is not set", cli.TokenEnv)
		}

		cfg := getConfig()
		if err := cfg.AddContext(args[0], ctx); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q added successfully", args[0])
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().DeleteContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Context %q deleted", args[0])
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().UseContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to context %q", args[0])
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if cfg.CurrentContext == "" {
			fmt.Fprintln(cli.Stdout, "No current context set")
			return nil
		}
		fmt.Fprintln(cli.Stdout, cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"list-contexts", "get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if len(cfg.Contexts) == 0 {
			fmt.Fprintln(cli.Stdout, "No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(cli.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tBASE_URL\tSTORAGE\tHISTORY")
		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			baseURL := ctx.BaseURL
			if baseURL == "" {
				baseURL = "(default)"
			}
			history := "off"
			if ctx.HistoryDir != "" {
				history = "on"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", current, name, baseURL, storageLabel(ctx), history)
		}
		return w.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		out := cli.Stdout

		fmt.Fprintf(out, "Config file: %s\n", cfg.Path())
		fmt.Fprintf(out, "Current context: %s\n", cfg.CurrentContext)
		fmt.Fprintf(out, "Contexts: %d\n", len(cfg.Contexts))

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			fmt.Fprintf(out, "\n  %s:\n", name)
			fmt.Fprintf(out, "    API Key: %s\n", cli.MaskAPIKey(ctx.APIKey))
			if ctx.BaseURL != "" {
				fmt.Fprintf(out, "    Base URL: %s\n", ctx.BaseURL)
			}
			if ctx.RouterURL != "" {
				fmt.Fprintf(out, "    Router URL: %s\n", ctx.RouterURL)
			}
			if ctx.Timeout > 0 {
				fmt.Fprintf(out, "    Timeout: %ds\n", ctx.Timeout)
			}
			if ctx.RateLimit > 0 {
				fmt.Fprintf(out, "    Rate Limit: %g/s\n", ctx.RateLimit)
			}
			if ctx.CaptionBackend != "" {
				fmt.Fprintf(out, "    Caption Backend: %s\n", ctx.CaptionBackend)
			}
			fmt.Fprintf(out, "    Storage: %s\n", storageLabel(ctx))
			if ctx.HistoryDir != "" {
				fmt.Fprintf(out, "    History: %s\n", ctx.HistoryDir)
			}
		}
		return nil
	},
}

func storageLabel(ctx *cli.Context) string {
	switch {
	case ctx.Storage.S3Bucket != "":
		return "s3://" + ctx.Storage.S3Bucket + "/" + ctx.Storage.S3Prefix
	case ctx.Storage.Dir != "":
		return ctx.Storage.Dir
	default:
		return "(temp dir)"
	}
}

func init() {
	f := configAddContextCmd.Flags()
	f.String("api-key", "", "Hugging Face access token")
	f.String("base-url", "", "Inference API base URL")
	f.String("router-url", "", "Chat completions router base URL")
	f.Int("timeout", 0, "Request timeout in seconds")
	f.Int("max-retries", 0, "Maximum retries for transient errors")
	f.Float64("rate-limit", 0, "Requests per second toward each endpoint (0 = unlimited)")
	f.String("image-model", "", "Text-to-image model")
	f.String("caption-model", "", "Image-to-text model")
	f.String("translation-model", "", "Translation model")
	f.String("music-model", "", "Text-to-audio model")
	f.String("chat-model", "", "Chat model")
	f.String("speech-base-url", "", "Speech endpoint base URL")
	f.String("speech-lang", "", "Narration language (default en)")
	f.String("caption-backend", "", "Caption backend: hf or gemini")
	f.String("gemini-api-key", "", "Gemini API key for the gemini caption backend")
	f.String("gemini-model", "", "Gemini model")
	f.String("storage-dir", "", "Directory for transient audio files")
	f.String("s3-bucket", "", "S3 bucket for transient audio files")
	f.String("s3-prefix", "", "S3 key prefix")
	f.String("s3-region", "", "S3 region")
	f.String("s3-endpoint", "", "S3-compatible endpoint URL")
	f.String("history-dir", "", "Directory of the run history database (empty disables history)")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
