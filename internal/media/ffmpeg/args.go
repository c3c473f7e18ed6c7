package ffmpeg

import (
	"strconv"
	"strings"
	"time"

	"lingoclip/internal/media"
)

// formatSeconds renders a duration as fractional seconds the way ffmpeg
// expects positional times (millisecond precision is enough for cut points).
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func extractAudioArgs(videoPath, outPath string) []string {
	return []string{
		"-y", "-hide_banner",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outPath,
	}
}

func cutArgs(videoPath string, segment media.Segment, outPath string) []string {
	return []string{
		"-y", "-hide_banner",
		"-ss", formatSeconds(segment.Start),
		"-to", formatSeconds(segment.End),
		"-i", videoPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outPath,
	}
}

func burnArgs(videoPath, subtitlePath, outPath string) []string {
	return []string{
		"-y", "-hide_banner",
		"-i", videoPath,
		"-vf", "subtitles=" + escapeFilterPath(subtitlePath),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "copy",
		outPath,
	}
}

func titleCardArgs(text, outPath string, duration time.Duration) []string {
	seconds := formatSeconds(duration)
	return []string{
		"-y", "-hide_banner",
		"-f", "lavfi",
		"-i", "color=c=black:s=1280x720:d=" + seconds,
		"-f", "lavfi",
		"-i", "anullsrc=channel_layout=mono:sample_rate=16000",
		"-vf", "drawtext=text='" + escapeDrawtext(text) + "':fontcolor=white:fontsize=64:x=(w-text_w)/2:y=(h-text_h)/2",
		"-t", seconds,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		outPath,
	}
}

func concatArgs(listPath, outPath string) []string {
	return []string{
		"-y", "-hide_banner",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outPath,
	}
}

// escapeFilterPath quotes a path for use inside an ffmpeg filtergraph, where
// backslashes and colons are syntax.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, ":", `\:`)
	return path
}

// escapeDrawtext quotes arbitrary card text for the drawtext filter.
func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"'", `\'`,
		":", `\:`,
		"%", `\%`,
	)
	return replacer.Replace(text)
}

// concatListFile renders the concat demuxer's input list. Single quotes in
// paths use the demuxer's '\” escape.
func concatListFile(paths []string) string {
	var b strings.Builder
	for _, path := range paths {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(path, "'", `'\''`))
		b.WriteString("'\n")
	}
	return b.String()
}
