package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	resampleQuality      = 4
	defaultSpeakerBuffer = 100 * time.Millisecond
)

// Player plays raw mono PCM-16 audio through the default output device.
// Playback is synchronous: Play returns only after the last sample has
// been handed to the device.
type Player struct {
	// Speed is the playback speed ratio; 1.0 plays at the source rate.
	Speed float64

	initialized bool
}

// NewPlayer creates a Player with the given speed ratio.
func NewPlayer(speed float64) *Player {
	if speed <= 0 {
		speed = 1.0
	}
	return &Player{Speed: speed}
}

// Play blocks until the whole buffer has been played.
func (p *Player) Play(samples []int16, sampleRate int) error {
	if len(samples) == 0 {
		return fmt.Errorf("nothing to play")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	sr := beep.SampleRate(sampleRate)
	if !p.initialized {
		if err := speaker.Init(sr, sr.N(defaultSpeakerBuffer)); err != nil {
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		p.initialized = true
	}

	var streamer beep.Streamer = &pcmStreamer{samples: samples}
	if p.Speed != 1.0 {
		streamer = beep.ResampleRatio(resampleQuality, p.Speed, streamer)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}

// pcmStreamer adapts a mono PCM-16 buffer to the beep streamer interface.
type pcmStreamer struct {
	samples []int16
	pos     int
}

func (s *pcmStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if s.pos >= len(s.samples) {
			break
		}
		v := float64(s.samples[s.pos]) / 32768
		out[i][0] = v
		out[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *pcmStreamer) Err() error { return nil }
