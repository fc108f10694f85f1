package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os/exec"
	"strings"

	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension bounds the longest edge of a stored profile image.
const DefaultMaxDimension = 1024

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

// Processor validates an uploaded image and downscales it when it exceeds
// the dimension budget.
type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// FFMPEGProcessor decodes headers in-process to validate the upload and
// shells out to ffmpeg for the actual downscale.
type FFMPEGProcessor struct {
	path         string
	maxDimension int
}

func NewFFMPEGProcessor(binaryPath string, maxDimension int) *FFMPEGProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFMPEGProcessor{path: path, maxDimension: maxDimension}
}

func (p *FFMPEGProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	if maxDimension <= 0 {
		maxDimension = p.maxDimension
	}

	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: unsupported image: %w", err)
	}

	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return &Result{Bytes: data, ContentType: contentTypeFor(format, upload.ContentType)}, nil
	}

	resized, err := p.scale(ctx, data, maxDimension)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: resized, ContentType: "image/jpeg", Resized: true}, nil
}

func (p *FFMPEGProcessor) scale(ctx context.Context, data []byte, maxDimension int) ([]byte, error) {
	filter := fmt.Sprintf("scale='min(%d,iw)':'min(%d,ih)':force_original_aspect_ratio=decrease", maxDimension, maxDimension)
	cmd := exec.CommandContext(ctx, p.path,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-vf", filter,
		"-frames:v", "1",
		"-f", "image2", "-c:v", "mjpeg",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(data)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("media: ffmpeg resize: %w: %s", err, strings.TrimSpace(errBuf.String()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("media: ffmpeg produced no output")
	}
	return out.Bytes(), nil
}

func contentTypeFor(format, fallback string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	}
	if fallback != "" {
		return fallback
	}
	return "application/octet-stream"
}
