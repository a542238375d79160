// Package ytdlp fetches source videos with yt-dlp and splits out the audio
// track with ffmpeg.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/vidlingo/internal/adapter/cmdexec"
	"github.com/bnema/vidlingo/internal/port"
)

const (
	videoFile = "video.mp4"
	audioFile = "audio.mp3"

	formatSelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
)

// videoInfo is the subset of `yt-dlp -J` output we read.
type videoInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
}

type Source struct {
	binary string
	runner cmdexec.Runner
	media  port.MediaToolkit
}

func NewSource(binary string, media port.MediaToolkit, runner cmdexec.Runner) *Source {
	if binary == "" {
		binary = "yt-dlp"
	}
	if runner == nil {
		runner = cmdexec.ExecRunner{}
	}
	return &Source{binary: binary, runner: runner, media: media}
}

func (s *Source) Fetch(ctx context.Context, url, workDir string) (*port.IngestResult, error) {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}

	info, err := s.info(ctx, url)
	if err != nil {
		return nil, err
	}

	videoPath := filepath.Join(workDir, videoFile)
	_, err = s.runner.Run(ctx, s.binary,
		"--no-playlist",
		"--no-progress",
		"-f", formatSelector,
		"--merge-output-format", "mp4",
		"-o", videoPath,
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}

	audioPath := filepath.Join(workDir, audioFile)
	if err := s.media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}

	title := strings.TrimSpace(info.Title)
	if title == "" {
		title = "Unknown"
	}

	return &port.IngestResult{
		VideoPath:       videoPath,
		AudioPath:       audioPath,
		Title:           title,
		DurationSeconds: info.Duration,
		DetectedLang:    baseLanguage(info.Language),
	}, nil
}

func (s *Source) info(ctx context.Context, url string) (*videoInfo, error) {
	res, err := s.runner.Run(ctx, s.binary, "-J", "--no-playlist", "--skip-download", url)
	if err != nil {
		return nil, fmt.Errorf("read video info: %w", err)
	}

	var info videoInfo
	if err := json.Unmarshal([]byte(res.Stdout), &info); err != nil {
		return nil, fmt.Errorf("parse video info: %w", err)
	}
	return &info, nil
}

// baseLanguage reduces "en-US" style tags to the primary subtag.
func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}

var _ port.MediaSource = (*Source)(nil)
