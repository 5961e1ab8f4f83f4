package ytdlp

// PostProcess selects the post-processing step yt-dlp runs after the
// streams are retrieved.
type PostProcess int

const (
	PostProcessNone PostProcess = iota
	// PostProcessExtractAudio converts the download to an audio file.
	PostProcessExtractAudio
	// PostProcessRemuxVideo normalizes the final container.
	PostProcessRemuxVideo
)

// Options is the typed subset of yt-dlp behavior this tool drives. Only
// recognized fields exist so an unsupported knob is a compile error, not
// a silently ignored dictionary key.
type Options struct {
	FormatExpression string
	OutputTemplate   string
	PostProcess      PostProcess

	// AudioCodec and AudioQuality apply with PostProcessExtractAudio.
	AudioCodec   string
	AudioQuality string

	// MergeContainer applies with PostProcessRemuxVideo.
	MergeContainer string

	NoPlaylist          bool
	PreferExternalMuxer bool
}

// VideoOptions requests the best video+audio combination, preferring a
// single mp4 format and otherwise letting the engine merge separate
// streams into mp4.
func VideoOptions(outputTemplate string) Options {
	return Options{
		FormatExpression:    "bestvideo[ext=mp4]+bestaudio[ext=m4a]/bestvideo+bestaudio/best[ext=mp4]/best",
		OutputTemplate:      outputTemplate,
		PostProcess:         PostProcessRemuxVideo,
		MergeContainer:      "mp4",
		NoPlaylist:          true,
		PreferExternalMuxer: true,
	}
}

// AudioOptions requests the best audio stream converted to mp3 at a
// fixed quality.
func AudioOptions(outputTemplate string) Options {
	return Options{
		FormatExpression:    "bestaudio/best",
		OutputTemplate:      outputTemplate,
		PostProcess:         PostProcessExtractAudio,
		AudioCodec:          "mp3",
		AudioQuality:        "192",
		NoPlaylist:          true,
		PreferExternalMuxer: true,
	}
}

// args renders the options as yt-dlp command-line arguments.
func (o Options) args() []string {
	var args []string
	if o.FormatExpression != "" {
		args = append(args, "-f", o.FormatExpression)
	}
	if o.OutputTemplate != "" {
		args = append(args, "-o", o.OutputTemplate)
	}
	if o.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	switch o.PostProcess {
	case PostProcessExtractAudio:
		args = append(args, "-x", "--audio-format", o.AudioCodec, "--audio-quality", o.AudioQuality)
	case PostProcessRemuxVideo:
		args = append(args, "--merge-output-format", o.MergeContainer, "--remux-video", o.MergeContainer)
	}
	if o.PreferExternalMuxer {
		args = append(args, "--prefer-ffmpeg")
	}
	return args
}
