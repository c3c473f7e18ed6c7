package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Parse reads an SRT document: blocks separated by blank lines, each holding
// an optional numeric index line, a "start --> end" time-range line, and one
// or more text lines. Index lines are ignored (writers renumber); blocks
// whose time range fails to parse are skipped rather than failing the whole
// document. Input order is preserved.
func Parse(r io.Reader) (Timeline, error) {
	var timeline Timeline

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var block []string
	flush := func() {
		if entry, ok := parseBlock(block); ok {
			entry.Index = len(timeline.Entries) + 1
			timeline.Entries = append(timeline.Entries, entry)
		}
		block = block[:0]
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return Timeline{}, fmt.Errorf("read subtitles: %w", err)
	}
	flush()

	return timeline, nil
}

// ParseFile reads an SRT file from disk. A missing file is a fatal error.
func ParseFile(path string) (Timeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("open subtitle file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func parseBlock(lines []string) (Entry, bool) {
	// Skip everything up to the time-range line; whatever precedes it is an
	// index line (well-formed or not) and carries no information.
	rangeIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			rangeIdx = i
			break
		}
	}
	if rangeIdx < 0 {
		return Entry{}, false
	}

	start, end, err := parseTimeRange(lines[rangeIdx])
	if err != nil {
		return Entry{}, false
	}

	var text []string
	for _, line := range lines[rangeIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		text = append(text, line)
	}
	if len(text) == 0 {
		return Entry{}, false
	}

	return Entry{Start: start, End: end, Lines: text}, true
}

func parseTimeRange(line string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time range %q", line)
	}
	start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp converts an "HH:MM:SS,mmm" timestamp into a duration.
// A period millisecond separator is tolerated on input.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ".", ","))
	main, millisPart, found := strings.Cut(value, ",")
	if !found {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	var hours, minutes, seconds, millis int
	if _, err := fmt.Sscanf(main, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if _, err := fmt.Sscanf(millisPart, "%d", &millis); err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return total, nil
}

// FormatTimestamp renders a duration as "HH:MM:SS,mmm".
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// Write serializes the timeline as SRT with sequential 1-based indices. The
// output is deterministic, contains no byte-order mark, and separates entries
// with exactly one blank line.
func (t Timeline) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, entry := range t.Entries {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("write subtitles: %w", err)
			}
		}
		fmt.Fprintf(bw, "%d\n%s --> %s\n", i+1, FormatTimestamp(entry.Start), FormatTimestamp(entry.End))
		for _, line := range entry.Lines {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("write subtitles: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	return nil
}

// WriteFile writes the timeline to disk, creating or truncating the target.
func (t Timeline) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitle file: %w", err)
	}
	if err := t.Write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close subtitle file: %w", err)
	}
	return nil
}
