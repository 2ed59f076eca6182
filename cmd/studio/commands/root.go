package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/studio/pkg/cli"
)

const appName = "studio"

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Creative AI suite over hosted inference endpoints",
	Long: `Studio - image, story, chat, translation, speech and music generation.

Each mode sends your text through one or more hosted models and shows
every result as soon as it is ready:
  - story:     image -> caption -> story -> Arabic translation + narration
  - chat:      a single-turn answer
  - speech:    narration of your text
  - image:     an image from your description
  - translate: English to Arabic
  - music:     a clip from a genre or mood

Configuration is stored in ~/.giztoy/studio/ and supports multiple contexts,
similar to kubectl's context management. Without a context, $HF_TOKEN is used.

Examples:
  # Set up a new context
  studio config add-context default --api-key hf_xxx

  # Run the full pipeline and save the image and narration
  studio story "a red fox in the snow" -o ./out

  # Translate a file
  studio translate -f request.yaml --json
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.giztoy/studio/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output directory for generated media")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input request file (YAML or JSON, - for stdin)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output the run report as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	for _, cmd := range modeCommands() {
		rootCmd.AddCommand(cmd)
	}
}

func initConfig() {
	cli.SetupLogging(os.Stderr, verbose)

	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return cfg.ResolveContext(contextName)
}

// outputResult writes result as JSON or YAML to stdout.
func outputResult(result any, asJSON bool) error {
	format := cli.FormatYAML
	if asJSON {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{Format: format})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
