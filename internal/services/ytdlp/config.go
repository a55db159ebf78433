package ytdlp

// AudioProfile enumerates every post-processing option applied to downloaded
// audio. The defaults target speech transcription: mono 24 kHz FLAC with
// broadcast loudness normalization.
type AudioProfile struct {
	// SampleRate is the output sample rate in Hz.
	SampleRate int
	// Channels is the channel count after downmix.
	Channels int
	// IntegratedLUFS is the loudnorm integrated loudness target.
	IntegratedLUFS float64
	// TruePeakDBTP is the loudnorm true-peak ceiling.
	TruePeakDBTP float64
	// LoudnessRangeLU is the loudnorm loudness range.
	LoudnessRangeLU float64
	// CompressionLevel is the FLAC encoder effort, 0 to 12.
	CompressionLevel int
	// ForceKeyframes requests keyframe-aligned cuts for segment downloads so
	// decoding is not corrupted at the boundary.
	ForceKeyframes bool
}

// DefaultAudioProfile returns the fixed transcription profile.
func DefaultAudioProfile() AudioProfile {
	return AudioProfile{
		SampleRate:       24000,
		Channels:         1,
		IntegratedLUFS:   -16,
		TruePeakDBTP:     -1.5,
		LoudnessRangeLU:  11,
		CompressionLevel: 12,
		ForceKeyframes:   true,
	}
}

// Command names for external tools.
const (
	Command       = "yt-dlp"
	FFmpegCommand = "ffmpeg"
)

// fullVideoExtractorArgs selects alternate player clients when fetching an
// entire video; segment downloads use the default client.
const fullVideoExtractorArgs = "youtube:player_client=android,web"
