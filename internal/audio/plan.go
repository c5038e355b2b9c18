package audio

import (
	"fmt"

	"flacsmith/internal/services"
)

// Standard base rates a resample target must divide evenly into.
const (
	RateCD  = 44100
	RateDAT = 48000
)

// NeedsResample reports whether any file exceeds 16-bit depth or a 48 kHz
// sample rate.
func NeedsResample(props []FileProperties) bool {
	for _, p := range props {
		if p.NeedsResample() {
			return true
		}
	}
	return false
}

// NeedsResample reports whether this file exceeds 16-bit depth or a 48 kHz
// sample rate.
func (p Properties) NeedsResample() bool {
	return p.BitsPerSample > 16 || p.SampleRate > RateDAT
}

// TargetRate picks the resample target for a release: the maximum source rate
// reduced to 44100 or 48000 depending on which base it divides evenly into.
// Rates that are not a clean multiple of either base are unsupported.
func TargetRate(props []FileProperties) (int, error) {
	maxRate := 0
	for _, p := range props {
		if p.SampleRate > maxRate {
			maxRate = p.SampleRate
		}
	}
	return reduceRate(maxRate)
}

// TargetRateFor picks the resample target for a single file.
func TargetRateFor(p Properties) (int, error) {
	return reduceRate(p.SampleRate)
}

func reduceRate(rate int) (int, error) {
	switch {
	case rate > 0 && rate%RateCD == 0:
		return RateCD, nil
	case rate > 0 && rate%RateDAT == 0:
		return RateDAT, nil
	default:
		return 0, services.Wrap(
			services.ErrUnknownSampleRate,
			"plan",
			"reduce sample rate",
			fmt.Sprintf("source rate %d Hz is not a multiple of 44100 or 48000", rate),
			nil,
		)
	}
}
