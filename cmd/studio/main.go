// Package main provides the studio CLI.
//
// Usage:
//
//	studio [flags] <mode> [text]
//
// Modes:
//
//	story      - Image, caption, story, Arabic translation and narration
//	chat       - Single-turn chat
//	speech     - Text to speech
//	image      - Text to image
//	translate  - English to Arabic translation
//	music      - Text to music
//
// Other commands:
//
//	modes      - List the modes
//	serve      - Serve the modes over HTTP
//	history    - Inspect recorded runs
//	config     - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.giztoy/studio/
//	Use 'studio config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/studio/cmd/studio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
