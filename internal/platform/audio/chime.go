// Package audio plays the phase completion cue.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrAudioUnavailable indicates the speaker could not be initialised.
var ErrAudioUnavailable = errors.New("audio unavailable")

const chimeSampleRate = beep.SampleRate(44100)

// Chime plays a short two-tone cue through the default audio device. The
// speaker is opened lazily on the first cue.
type Chime struct {
	logger     *slog.Logger
	sampleRate beep.SampleRate
	initOnce   sync.Once
	initErr    error
	playLock   sync.Mutex

	initSpeaker func(beep.SampleRate, int) error
	play        func(...beep.Streamer)
}

// NewChime returns a Chime backed by the beep speaker.
func NewChime(logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Chime{
		logger:      logger,
		sampleRate:  chimeSampleRate,
		initSpeaker: speaker.Init,
		play:        speaker.Play,
	}
}

// Chime queues the cue and returns without waiting for playback.
func (chime *Chime) Chime() error {
	chime.initOnce.Do(func() {
		bufferSize := chime.sampleRate.N(time.Second / 10)
		if err := chime.initSpeaker(chime.sampleRate, bufferSize); err != nil {
			chime.initErr = fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
			chime.logger.Warn("audio disabled", "error", err)
		}
	})
	if chime.initErr != nil {
		return chime.initErr
	}

	chime.playLock.Lock()
	defer chime.playLock.Unlock()
	chime.play(cueStreamer(chime.sampleRate))
	return nil
}

func cueStreamer(sampleRate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		toneStreamer(sampleRate, 880, 150*time.Millisecond),
		beep.Silence(sampleRate.N(60*time.Millisecond)),
		toneStreamer(sampleRate, 1320, 250*time.Millisecond),
	)
}

// toneStreamer generates a sine tone with a linear fade-out.
func toneStreamer(sampleRate beep.SampleRate, frequency float64, length time.Duration) beep.Streamer {
	total := sampleRate.N(length)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if position >= total {
				break
			}
			elapsed := float64(position) / float64(sampleRate)
			envelope := 1 - float64(position)/float64(total)
			value := 0.3 * envelope * math.Sin(2*math.Pi*frequency*elapsed)
			samples[i][0] = value
			samples[i][1] = value
			position++
			n++
		}
		return n, true
	})
}
