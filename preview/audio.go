package preview

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

// AudioPlayer adapts an ebiten audio player to the Media interface so
// the synchronizer can steer sound clips on the timeline.
type AudioPlayer struct {
	player *audio.Player
}

// OpenAudio reads and decodes an audio file into a seekable player.
// The format is picked from the file extension; wav, mp3 and ogg are
// supported.
func OpenAudio(ctx *audio.Context, path string) (*AudioPlayer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preview: open audio %s: %w", path, err)
	}

	reader := bytes.NewReader(b)
	clean := strings.ToLower(path)

	var player *audio.Player
	switch {
	case strings.HasSuffix(clean, ".wav"):
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("preview: decode wav %s: %w", path, err)
		}
		player, err = ctx.NewPlayer(stream)
		if err != nil {
			return nil, fmt.Errorf("preview: player for %s: %w", path, err)
		}
	case strings.HasSuffix(clean, ".mp3"):
		stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("preview: decode mp3 %s: %w", path, err)
		}
		player, err = ctx.NewPlayer(stream)
		if err != nil {
			return nil, fmt.Errorf("preview: player for %s: %w", path, err)
		}
	case strings.HasSuffix(clean, ".ogg"):
		stream, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("preview: decode ogg %s: %w", path, err)
		}
		player, err = ctx.NewPlayer(stream)
		if err != nil {
			return nil, fmt.Errorf("preview: player for %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("preview: open audio %s: unsupported format", path)
	}

	return &AudioPlayer{player: player}, nil
}

// NewAudioContext returns the shared audio context for the app.
func NewAudioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(sampleRate)
}

func (a *AudioPlayer) Position() float64 {
	return a.player.Position().Seconds()
}

func (a *AudioPlayer) SetPosition(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	return a.player.SetPosition(time.Duration(seconds * float64(time.Second)))
}

func (a *AudioPlayer) Play() {
	if !a.player.IsPlaying() {
		a.player.Play()
	}
}

func (a *AudioPlayer) Pause() {
	if a.player.IsPlaying() {
		a.player.Pause()
	}
}

func (a *AudioPlayer) IsPlaying() bool {
	return a.player.IsPlaying()
}

// Close releases the underlying player.
func (a *AudioPlayer) Close() error {
	return a.player.Close()
}
