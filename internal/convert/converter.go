// Package convert transcodes audio files into the pack-compatible format by
// shelling out to ffmpeg, and tracks each transcode as a job on the project
// state.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	ffmpegCommand  = "ffmpeg"
	ffprobeCommand = "ffprobe"

	// The game only plays OGG Vorbis, so the vorbis encode settings are
	// fixed: quality 6 at 44.1 kHz stereo.
	vorbisQuality    = "6"
	targetSampleRate = "44100"
	targetChannels   = "2"

	convertedSuffix    = "-converted"
	progressTimePrefix = "out_time_us="
)

// Converter runs ffmpeg transcodes. It is stateless and safe for concurrent
// use; job bookkeeping lives in Manager.
type Converter struct {
	logger *slog.Logger
}

func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{logger: logger.With("component", "convert")}
}

// Convert transcodes inputPath to targetFormat next to the source file and
// returns the output path.
func (c *Converter) Convert(ctx context.Context, inputPath, targetFormat string) (string, error) {
	return c.ConvertWithProgress(ctx, inputPath, targetFormat, nil)
}

// ConvertWithProgress is Convert with a percentage callback driven by
// ffmpeg's progress output.
func (c *Converter) ConvertWithProgress(ctx context.Context, inputPath, targetFormat string, onProgress func(percent int)) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}
	if _, err := exec.LookPath(ffmpegCommand); err != nil {
		return "", fmt.Errorf("ffmpeg not found: %w", err)
	}

	codecArgs, err := codecArgsFor(targetFormat)
	if err != nil {
		return "", err
	}
	outputPath := outputPathFor(inputPath, targetFormat)

	duration, err := c.probeDuration(ctx, inputPath)
	if err != nil {
		c.logger.Debug("duration probe failed, progress disabled", "file", inputPath, "error", err)
		duration = 0
	}

	args := []string{"-y", "-i", inputPath, "-vn"}
	args = append(args, codecArgs...)
	args = append(args, "-progress", "pipe:2", "-nostats", outputPath)

	cmd := exec.CommandContext(ctx, ffmpegCommand, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start ffmpeg: %w", err)
	}

	go c.monitorProgress(stderr, duration, onProgress)

	if err := cmd.Wait(); err != nil {
		_ = os.Remove(outputPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}

	c.logger.Info("conversion finished", "input", inputPath, "output", outputPath, "format", targetFormat)
	return outputPath, nil
}

func codecArgsFor(targetFormat string) ([]string, error) {
	switch strings.ToLower(targetFormat) {
	case "ogg":
		return []string{
			"-c:a", "libvorbis",
			"-q:a", vorbisQuality,
			"-ar", targetSampleRate,
			"-ac", targetChannels,
		}, nil
	case "wav":
		return []string{"-c:a", "pcm_s16le", "-ar", targetSampleRate}, nil
	default:
		return nil, fmt.Errorf("unsupported target format: %s", targetFormat)
	}
}

func outputPathFor(inputPath, targetFormat string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + convertedSuffix + "." + strings.ToLower(targetFormat)
}

func (c *Converter) probeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, ffprobeCommand,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("run ffprobe: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads ffmpeg's key=value progress stream and reports
// percentages. With an unknown duration it stays silent; the job completes
// at 100 either way.
func (c *Converter) monitorProgress(r io.Reader, totalSeconds float64, onProgress func(int)) {
	if onProgress == nil || totalSeconds <= 0 {
		_, _ = io.Copy(io.Discard, r)
		return
	}
	scanner := bufio.NewScanner(r)
	last := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, progressTimePrefix) {
			continue
		}
		us, err := strconv.ParseFloat(strings.TrimPrefix(line, progressTimePrefix), 64)
		if err != nil {
			continue
		}
		percent := int(us / 1e6 / totalSeconds * 100)
		if percent > 100 {
			percent = 100
		}
		if percent > last {
			last = percent
			onProgress(percent)
		}
	}
}
