package pipeline

import (
	"fmt"
	"strconv"

	"flacsmith/internal/catalog"
	"flacsmith/internal/services"
)

// Build constructs the command chain that transcodes src into dst for the
// given target format.
//
// The decode stage emits a WAV stream; when resampling it also dithers down
// to 16-bit at targetRate in the same step. The encode stage is selected by
// the format's encoder program. A lossless target that needs resampling
// collapses into a single sox command writing the FLAC output directly,
// avoiding a pointless intermediate stream stage.
func Build(format catalog.Format, resample bool, targetRate int, src, dst string) (Spec, error) {
	encoder := format.Encoder
	if encoder == nil {
		return nil, services.Wrap(
			services.ErrTranscode,
			"build",
			"resolve encoder",
			fmt.Sprintf("missing encoder data for format %s", format.LongName),
			nil,
		)
	}

	if format.Lossless() && resample {
		return Spec{resampleToFile(src, dst, targetRate)}, nil
	}

	var decode Command
	if resample {
		decode = resampleToStream(src, targetRate)
	} else {
		decode = Command{Program: "flac", Args: []string{"-dcs", "--", src}}
	}

	var encode Command
	switch encoder.Program {
	case "lame":
		args := append([]string{"-S"}, encoder.OptArgs()...)
		args = append(args, "-", dst)
		encode = Command{Program: "lame", Args: args}
	case "flac":
		args := append([]string{}, encoder.OptArgs()...)
		args = append(args, "-o", dst, "-")
		encode = Command{Program: "flac", Args: args}
	default:
		return nil, services.Wrap(
			services.ErrTranscode,
			"build",
			"select encoder",
			fmt.Sprintf("encoder out of valid range: %q", encoder.Program),
			nil,
		)
	}

	return Spec{decode, encode}, nil
}

func resampleToStream(src string, rate int) Command {
	return Command{
		Program: "sox",
		Args:    []string{src, "-G", "-b", "16", "-t", "wav", "-", "rate", "-v", "-L", strconv.Itoa(rate), "dither"},
	}
}

func resampleToFile(src, dst string, rate int) Command {
	return Command{
		Program: "sox",
		Args:    []string{src, "-G", "-b", "16", dst, "rate", "-v", "-L", strconv.Itoa(rate), "dither"},
	}
}
