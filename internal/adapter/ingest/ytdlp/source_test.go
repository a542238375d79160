package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/vidlingo/internal/adapter/cmdexec"
	"github.com/bnema/vidlingo/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	run func(ctx context.Context, name string, args ...string) (cmdexec.Result, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (cmdexec.Result, error) {
	return f.run(ctx, name, args...)
}

func outputArg(args []string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-o" {
			return args[i+1]
		}
	}
	return ""
}

func TestSource_Fetch(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "jobs", "j1")
	media := mocks.NewMediaToolkitMock(t)

	var calls int
	runner := &fakeRunner{run: func(_ context.Context, name string, args ...string) (cmdexec.Result, error) {
		calls++
		assert.Equal(t, "/usr/local/bin/yt-dlp", name)
		assert.Equal(t, "https://youtu.be/abc", args[len(args)-1])
		switch calls {
		case 1:
			assert.Equal(t, "-J", args[0])
			return cmdexec.Result{Stdout: `{"title":" Go Talk ","duration":754.5,"language":"en-US"}`}, nil
		case 2:
			out := outputArg(args)
			require.NoError(t, os.WriteFile(out, []byte("mp4"), 0644))
			return cmdexec.Result{}, nil
		default:
			t.Fatalf("unexpected call %d", calls)
			return cmdexec.Result{}, nil
		}
	}}

	media.EXPECT().ExtractAudio(mock.Anything, filepath.Join(workDir, "video.mp4"), filepath.Join(workDir, "audio.mp3")).
		Return(nil).
		Once()

	src := NewSource("/usr/local/bin/yt-dlp", media, runner)
	res, err := src.Fetch(context.Background(), "https://youtu.be/abc", workDir)

	require.NoError(t, err)
	assert.Equal(t, "Go Talk", res.Title)
	assert.InDelta(t, 754.5, res.DurationSeconds, 1e-9)
	assert.Equal(t, "en", res.DetectedLang)
	assert.Equal(t, filepath.Join(workDir, "video.mp4"), res.VideoPath)
	assert.Equal(t, filepath.Join(workDir, "audio.mp3"), res.AudioPath)
}

func TestSource_Fetch_InfoFailure(t *testing.T) {
	runner := &fakeRunner{run: func(context.Context, string, ...string) (cmdexec.Result, error) {
		return cmdexec.Result{}, &cmdexec.Error{Name: "yt-dlp", ExitCode: 1, Stderr: "ERROR: Video unavailable"}
	}}

	src := NewSource("", mocks.NewMediaToolkitMock(t), runner)
	_, err := src.Fetch(context.Background(), "https://youtu.be/gone", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Video unavailable")
}

func TestSource_Fetch_MissingDownload(t *testing.T) {
	runner := &fakeRunner{run: func(_ context.Context, _ string, args ...string) (cmdexec.Result, error) {
		if args[0] == "-J" {
			return cmdexec.Result{Stdout: `{"title":"x"}`}, nil
		}
		return cmdexec.Result{}, nil
	}}

	src := NewSource("", mocks.NewMediaToolkitMock(t), runner)
	_, err := src.Fetch(context.Background(), "https://youtu.be/abc", t.TempDir())

	assert.ErrorContains(t, err, "download video")
}

func TestSource_Fetch_ExtractFailure(t *testing.T) {
	runner := &fakeRunner{run: func(_ context.Context, _ string, args ...string) (cmdexec.Result, error) {
		if args[0] == "-J" {
			return cmdexec.Result{Stdout: `{}`}, nil
		}
		return cmdexec.Result{}, os.WriteFile(outputArg(args), nil, 0644)
	}}
	media := mocks.NewMediaToolkitMock(t)
	media.EXPECT().ExtractAudio(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no audio stream")).Once()

	src := NewSource("", media, runner)
	_, err := src.Fetch(context.Background(), "https://youtu.be/abc", t.TempDir())

	assert.ErrorContains(t, err, "extract audio: no audio stream")
}

func TestBaseLanguage(t *testing.T) {
	assert.Equal(t, "en", baseLanguage("en-US"))
	assert.Equal(t, "pt", baseLanguage("pt_BR"))
	assert.Equal(t, "vi", baseLanguage(" VI "))
	assert.Equal(t, "", baseLanguage(""))
}
