// Package encode implements the frame encoding stage.
package encode

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/user/gridshow/pkg/pipeline"
	"github.com/user/gridshow/pkg/ports"
)

// ErrNoFrames is returned when there is nothing to encode.
var ErrNoFrames = errors.New("no frames to encode")

// Stage encodes painted frames into image files.
type Stage struct {
	renderer   ports.Renderer
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new encode stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		renderer:   renderer,
		sink:       sink,
		logger:     logger.WithComponent("encode"),
		numWorkers: numWorkers,
	}
}

// Execute encodes all frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	if len(input.Frames) == 0 {
		return pipeline.EncodeResult{}, ErrNoFrames
	}
	format, err := ParseFormat(input.Format)
	if err != nil {
		return pipeline.EncodeResult{}, err
	}

	workers := min(s.numWorkers, len(input.Frames))
	s.logger.Debug("Encoding %d frames with %d workers", len(input.Frames), workers)

	jobs := make(chan int, len(input.Frames))
	results := make(chan pipeline.EncodedFrame, len(input.Frames))
	errChan := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, format, jobs, results, errChan)
	}

	for i := range input.Frames {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	encoded := make([]pipeline.EncodedFrame, 0, len(input.Frames))
	for r := range results {
		encoded = append(encoded, r)
	}

	if err := <-errChan; err != nil {
		return pipeline.EncodeResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return pipeline.EncodeResult{}, err
	}

	sort.Slice(encoded, func(i, j int) bool {
		return encoded[i].Index < encoded[j].Index
	})

	var total int64
	for _, f := range encoded {
		total += int64(len(f.Data))
	}
	return pipeline.EncodeResult{Frames: encoded, TotalBytes: total}, nil
}

func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.EncodeInput,
	format ports.ImageFormat,
	jobs <-chan int,
	results chan<- pipeline.EncodedFrame,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame := input.Frames[idx]
		img := frame.Image
		if input.Downscale && input.Width > 0 && input.Height > 0 {
			if b := img.Bounds(); b.Dx() != input.Width || b.Dy() != input.Height {
				img = s.renderer.ResizeImage(img, input.Width, input.Height)
			}
		}

		if s.sink.Enabled() {
			if err := s.sink.SaveFrame(frame.Index, img); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %v", frame.Index, err)
			}
		}

		data, err := s.renderer.EncodeImage(img, format, input.Quality)
		if err != nil {
			select {
			case errChan <- fmt.Errorf("encode frame %d: %w", frame.Index, err):
			default:
			}
			return
		}

		results <- pipeline.EncodedFrame{
			Index: frame.Index,
			Path:  FramePath(input.OutputPath, frame.Index, len(input.Frames)),
			Data:  data,
		}
	}
}

// ParseFormat maps a format name to an image format. Empty means PNG.
func ParseFormat(name string) (ports.ImageFormat, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return ports.FormatPNG, nil
	case "jpg", "jpeg":
		return ports.FormatJPEG, nil
	}
	return 0, fmt.Errorf("unsupported image format %q", name)
}

// FramePath returns the output path of frame index out of total. A single
// frame keeps path unchanged; otherwise "-0001" style suffixes are added
// before the extension.
func FramePath(path string, index, total int) string {
	if total <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(path, ext), index, ext)
}
