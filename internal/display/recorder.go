package display

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/felipebalbi/boid/pkg/framebuffer"
)

// ErrSizeMismatch is returned when a plane does not match its dimensions.
var ErrSizeMismatch = errors.New("plane size does not match dimensions")

// Recorder is the headless display. It fingerprints every presented frame
// and, when a snapshot directory is set, saves one PNG every N frames.
type Recorder struct {
	snapshotDir string
	every       uint64

	frames   uint64
	checksum uint64
	rgba     []byte
}

// NewRecorder creates snapshotDir if needed. An empty dir or a
// non-positive every disables snapshots.
func NewRecorder(snapshotDir string, every int) (*Recorder, error) {
	r := &Recorder{}
	if snapshotDir == "" || every <= 0 {
		return r, nil
	}
	if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	r.snapshotDir = snapshotDir
	r.every = uint64(every)
	return r, nil
}

// Present implements framebuffer.Display.
func (r *Recorder) Present(pixels []framebuffer.Pixel, width, height int) error {
	if len(pixels) != width*height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrSizeMismatch, len(pixels), width, height)
	}

	r.rgba = ToRGBA(r.rgba, pixels)
	r.checksum = xxhash.Sum64(r.rgba)
	r.frames++

	if r.every > 0 && r.frames%r.every == 0 {
		if err := r.snapshot(width, height); err != nil {
			return err
		}
	}
	return nil
}

// Frames returns how many frames were presented.
func (r *Recorder) Frames() uint64 { return r.frames }

// Checksum returns the xxhash of the last presented frame.
func (r *Recorder) Checksum() uint64 { return r.checksum }

func (r *Recorder) snapshot(width, height int) error {
	img := &image.RGBA{
		Pix:    r.rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	path := filepath.Join(r.snapshotDir, fmt.Sprintf("frame-%06d.png", r.frames))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot %s: %w", path, err)
	}
	return f.Close()
}
