package audio

import "errors"

// ErrSilentAudio is returned when a captured buffer contains no signal at
// all. Peak normalization of a silent buffer has no defined result, so the
// capture is rejected instead.
var ErrSilentAudio = errors.New("audio buffer is silent")

// NormalizePeak scales samples in place so the peak absolute amplitude is
// full scale (1.0).
func NormalizePeak(samples []float32) error {
	if len(samples) == 0 {
		return ErrSilentAudio
	}

	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak == 0 {
		return ErrSilentAudio
	}

	for i := range samples {
		samples[i] /= peak
	}
	return nil
}

// Float32ToPCM16 converts normalized float32 samples to 16-bit PCM,
// clipping anything outside [-1, 1].
func Float32ToPCM16(samples []float32) []int16 {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		pcm[i] = int16(s * 32767)
	}
	return pcm
}
