package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/studio/pkg/cli"
	"github.com/haivivi/studio/pkg/studio"
)

// modeCommands returns one command per mode, in menu order.
func modeCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, info := range studio.Modes() {
		mode := info.Mode
		cmds = append(cmds, &cobra.Command{
			Use:     string(mode) + " [text]",
			Aliases: mode.Aliases(),
			Short:   info.Title,
			Long: fmt.Sprintf(`%s

%s: the positional arguments joined by spaces, or the input
field of a request file.

Example request file (%s.yaml):
  input: a red fox in the snow

Examples:
  studio %s "a red fox in the snow"
  studio %s -f %s.yaml -o ./out --json`,
				info.Description, info.InputLabel, mode, mode, mode, mode),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMode(mode, args)
			},
		})
	}
	return cmds
}

// buildRequest reads the request from the -f file or the arguments. The
// mode of the command always wins over the file.
func buildRequest(mode studio.Mode, args []string) (studio.Request, error) {
	req := studio.Request{Mode: mode}
	if inputFile != "" {
		if err := cli.LoadRequest(inputFile, &req); err != nil {
			return req, err
		}
		if req.Mode != "" && req.Mode != mode {
			printVerbose("Ignoring mode %q from %s", req.Mode, inputFile)
		}
		req.Mode = mode
		return req, nil
	}
	req.Input = strings.Join(args, " ")
	return req, nil
}

func runMode(mode studio.Mode, args []string) error {
	req, err := buildRequest(mode, args)
	if err != nil {
		return err
	}

	c, err := getContext()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o, closeStudio, err := openStudio(ctx, c)
	if err != nil {
		return err
	}
	defer closeStudio()

	if outputFile != "" {
		if err := os.MkdirAll(outputFile, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Panels go to stderr when stdout carries the JSON report.
	w := cli.Stdout
	if outputJSON {
		w = cli.Stderr
	}
	sink := newTermSink(w, outputFile, time.Now().Format("20060102-150405-"))
	report := o.Run(ctx, req, sink)

	if outputJSON {
		if err := outputResult(report.Record(), true); err != nil {
			return err
		}
	}

	if errs := report.Errors(); len(errs) > 0 {
		return fmt.Errorf("%d of %d stages failed", len(errs), len(report.Stages))
	}
	if len(report.Warnings) == 0 && !outputJSON {
		cli.PrintSuccess("Done in %s", cli.FormatDuration(report.Duration))
	}
	return nil
}
