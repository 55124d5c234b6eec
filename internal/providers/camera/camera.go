package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

var ErrUnavailable = errors.New("camera unavailable")

// Command captures a frame by running an external program that writes the
// encoded image to stdout (rpicam-still, fswebcam, ffmpeg...).
type Command struct {
	args []string
}

func NewCommand(cmdline string) (*Command, error) {
	args := strings.Fields(cmdline)
	if len(args) == 0 {
		return nil, fmt.Errorf("empty camera command")
	}
	return &Command{args: args}, nil
}

func (c *Command) Capture(ctx context.Context) (*core.Image, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	cmd.Stderr = &stderr

	data, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w: %s", c.args[0], err, strings.TrimSpace(stderr.String()))
	}
	return newImage(ctx, data)
}

// File returns the content of a still image on every capture.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Capture(ctx context.Context) (*core.Image, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read still: %w", err)
	}
	return newImage(ctx, data)
}

// Unavailable always fails, the robot then talks without an image.
type Unavailable struct{}

func (Unavailable) Capture(context.Context) (*core.Image, error) {
	return nil, ErrUnavailable
}

func newImage(ctx context.Context, data []byte) (*core.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty frame")
	}
	img := &core.Image{Data: data, MIMEType: http.DetectContentType(data)}
	log.FromCtx(ctx).Debug().Int("bytes", len(data)).Str("mime", img.MIMEType).Msg("frame captured")
	return img, nil
}
