package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"
)

const (
	sampleRate = beep.SampleRate(44100)

	hitFreq    = 880
	defeatLow  = 440
	defeatHigh = 660
)

// Player plays the game feedback tones
type Player interface {
	Hit()
	Defeat()
	Close()
}

// Silent is a Player that plays nothing
type Silent struct{}

func (Silent) Hit()    {}
func (Silent) Defeat() {}
func (Silent) Close()  {}

type speakerPlayer struct{}

// New opens the audio device. Sound is optional: without a device, or when
// disabled, a Silent player is returned.
func New(enabled bool) Player {
	if !enabled {
		return Silent{}
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, game can run without sound
		log.Warn().Err(err).Msg("audio initialization failed")
		return Silent{}
	}
	return speakerPlayer{}
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		log.Debug().Err(err).Float64("freq", freq).Msg("cannot build tone")
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), sine)
}

func (speakerPlayer) Hit() {
	speaker.Play(tone(hitFreq, 50*time.Millisecond))
}

func (speakerPlayer) Defeat() {
	speaker.Play(beep.Seq(
		tone(defeatLow, 80*time.Millisecond),
		tone(defeatHigh, 160*time.Millisecond),
	))
}

func (speakerPlayer) Close() {
	speaker.Close()
}
