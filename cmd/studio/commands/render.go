package commands

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/haivivi/studio/pkg/cli"
	"github.com/haivivi/studio/pkg/studio"
)

const panelWidth = 80

// termSink renders each artifact as a panel the moment its stage ends.
// Binary artifacts are written to saveDir when it is set.
type termSink struct {
	w       io.Writer
	styles  cli.Styles
	saveDir string
	prefix  string

	saved []string
}

func newTermSink(w io.Writer, saveDir, prefix string) *termSink {
	return &termSink{
		w:       w,
		styles:  cli.NewStyles(cli.DefaultTheme),
		saveDir: saveDir,
		prefix:  prefix,
	}
}

func (s *termSink) Begin(stage studio.Stage) {
	fmt.Fprintln(s.w, s.styles.Meta.Render(stage.Progress()))
}

func (s *termSink) Show(a studio.Artifact) {
	if !a.Kind.Binary() {
		fmt.Fprintln(s.w, s.styles.Panel(a.Kind.Title(), "", a.Text, panelWidth))
		return
	}

	meta := fmt.Sprintf("%s · %s", a.MIMEType, cli.FormatBytes(int64(len(a.Data))))
	body := "use -o <dir> to save"
	if s.saveDir != "" {
		path, err := s.save(a)
		if err != nil {
			cli.PrintError("save %s: %v", a.Kind, err)
			body = "not saved"
		} else {
			s.saved = append(s.saved, path)
			body = "saved to " + path
		}
	}
	fmt.Fprintln(s.w, s.styles.Panel(a.Kind.Title(), meta, body, panelWidth))
}

func (s *termSink) save(a studio.Artifact) (string, error) {
	path := filepath.Join(s.saveDir, s.prefix+string(a.Kind)+extFor(a.MIMEType))
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *termSink) Warn(msg string) {
	fmt.Fprintln(s.w, s.styles.Warning.Render("⚠ "+msg))
}

func (s *termSink) Fail(err *studio.StageError) {
	cli.PrintError("%s", err.Error())
}

// extFor returns the file extension for a media type.
func extFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "audio/mpeg":
		return ".mp3"
	case "audio/flac":
		return ".flac"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

var _ studio.Sink = (*termSink)(nil)
