package subtitles_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lingoclip/internal/subtitles"
	"lingoclip/internal/testsupport"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Hello there.

2
00:00:04,000 --> 00:00:06,250
How are you
doing today?

3
00:00:07,000 --> 00:00:09,000
Fine, thanks!
`

func TestParseWellFormed(t *testing.T) {
	timeline, err := subtitles.Parse(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(timeline.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(timeline.Entries))
	}
	second := timeline.Entries[1]
	if second.Start != 4*time.Second || second.End != 6*time.Second+250*time.Millisecond {
		t.Fatalf("second entry range = %v..%v", second.Start, second.End)
	}
	if len(second.Lines) != 2 {
		t.Fatalf("second entry lines = %d, want 2", len(second.Lines))
	}
	if second.Index != 2 {
		t.Fatalf("second entry index = %d, want 2", second.Index)
	}
}

func TestParseSkipsCorruptBlocks(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:02,000
Good block.

not-a-number
garbage timestamp line
Orphaned text.

oops
00:00:05,000 --> 00:00:06,000
Index line is junk but the block is fine.
`
	timeline, err := subtitles.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(timeline.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (corrupt block skipped)", len(timeline.Entries))
	}
	if timeline.Entries[1].Index != 2 {
		t.Fatalf("surviving blocks must be renumbered, got index %d", timeline.Entries[1].Index)
	}
}

func TestParseToleratesCRLFAndPeriodMillis(t *testing.T) {
	input := "1\r\n00:00:01.000 --> 00:00:02.000\r\nWindows line endings.\r\n\r\n"
	timeline, err := subtitles.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(timeline.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(timeline.Entries))
	}
	if timeline.Entries[0].Lines[0] != "Windows line endings." {
		t.Fatalf("unexpected text %q", timeline.Entries[0].Lines[0])
	}
}

func TestWriteRoundTripIsByteStable(t *testing.T) {
	timeline, err := subtitles.Parse(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var first bytes.Buffer
	if err := timeline.Write(&first); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reparsed, err := subtitles.Parse(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	var second bytes.Buffer
	if err := reparsed.Write(&second); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("round trip not byte stable:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
	if bytes.HasPrefix(first.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("output must not carry a byte-order mark")
	}
}

func TestWriteRenumbersFromOne(t *testing.T) {
	timeline := subtitles.Timeline{Entries: []subtitles.Entry{
		{Index: 17, Start: time.Second, End: 2 * time.Second, Lines: []string{"a"}},
		{Index: 99, Start: 3 * time.Second, End: 4 * time.Second, Lines: []string{"b"}},
	}}
	var buf bytes.Buffer
	if err := timeline.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\na\n\n2\n00:00:03,000 --> 00:00:04,000\nb\n"
	if buf.String() != want {
		t.Fatalf("output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestTimestampFormatting(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00,000"},
		{time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, "01:02:03,045"},
		{99*time.Minute + 999*time.Millisecond, "01:39:00,999"},
	}
	for _, tc := range cases {
		if got := subtitles.FormatTimestamp(tc.d); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.d, got, tc.want)
		}
		back, err := subtitles.ParseTimestamp(tc.want)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", tc.want, err)
		} else if back != tc.d {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.want, back, tc.d)
		}
	}
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "1:2", "aa:bb:cc,ddd", "00:61:00,000", "00:00:00,1000"} {
		if _, err := subtitles.ParseTimestamp(value); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", value)
		}
	}
}

func TestWriteFileParseFileRoundTrip(t *testing.T) {
	timeline := testsupport.Timeline(3)
	path := filepath.Join(t.TempDir(), "cues.srt")
	testsupport.WriteSRT(t, path, timeline)

	parsed, err := subtitles.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(parsed.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(parsed.Entries))
	}
	for i, entry := range parsed.Entries {
		want := timeline.Entries[i]
		if entry.Start != want.Start || entry.End != want.End {
			t.Fatalf("entry %d range = %v..%v, want %v..%v", i, entry.Start, entry.End, want.Start, want.End)
		}
		if len(entry.Lines) != 1 || entry.Lines[0] != want.Lines[0] {
			t.Fatalf("entry %d lines = %v, want %v", i, entry.Lines, want.Lines)
		}
	}
}

func TestParseFileMissingIsFatal(t *testing.T) {
	if _, err := subtitles.ParseFile("/definitely/not/here.srt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
