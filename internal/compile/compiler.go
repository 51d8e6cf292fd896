package compile

import (
	"strconv"

	"cdgen/internal/lease"
	"cdgen/internal/score"
)

// Compile lowers a validated score into a totally ordered command list
// (spec §4.7). Callers must have already called score.Validate. Each
// line is leased a Y row through allocator (C5) for its visible window;
// pass a fresh lease.New(lease.Pool) per render job.
func Compile(s score.Score, allocator *lease.Allocator) []Command {
	b := &commandBuilder{}
	timings := computeLineTimings(s.Lines)

	emitMetadata(b, s, timings)

	for i, line := range s.Lines {
		lineID := "line_" + strconv.Itoa(i)
		ys := allocator.Lease(lineID, timings[i].showTimeMS, timings[i].hideTimeMS, 1)
		emitLine(b, lineID, line, timings[i], ys[0])
	}

	emitCredit(b, s, timings)

	return b.finalize()
}

// emitMetadata emits title/artist show_text commands before the first
// line, removed at max(500, first_highlight - 500) (spec §4.7).
func emitMetadata(b *commandBuilder, s score.Score, timings []lineTiming) {
	if s.Title == "" && s.Artist == "" {
		return
	}
	removeAt := int64(500)
	if len(s.Lines) > 0 {
		firstHighlight := s.Lines[0].HighlightStart()
		if alt := firstHighlight - 500; alt > removeAt {
			removeAt = alt
		}
	}

	if s.Title != "" {
		id := b.newTextID("meta_title")
		b.add(Command{TimestampMS: 0, priority: priorityShowMetadata, Kind: ShowText,
			TextID: id, Text: s.Title, Position: Position{X: 500, Y: 400}, Align: AlignCenter})
		b.add(Command{TimestampMS: removeAt, priority: priorityRemoveText, Kind: RemoveText, TextID: id})
	}
	if s.Artist != "" {
		id := b.newTextID("meta_artist")
		b.add(Command{TimestampMS: 0, priority: priorityShowMetadata, Kind: ShowText,
			TextID: id, Text: s.Artist, Position: Position{X: 500, Y: 550}, Align: AlignCenter})
		b.add(Command{TimestampMS: removeAt, priority: priorityRemoveText, Kind: RemoveText, TextID: id})
	}
}

// emitCredit emits the optional trailing credit text after the last
// line's hide time.
func emitCredit(b *commandBuilder, s score.Score, timings []lineTiming) {
	if s.Credit == "" {
		return
	}
	startAt := int64(0)
	if len(timings) > 0 {
		startAt = timings[len(timings)-1].hideTimeMS
	}
	id := b.newTextID("credit")
	b.add(Command{TimestampMS: startAt, priority: priorityShowMetadata, Kind: ShowText,
		TextID: id, Text: s.Credit, Position: Position{X: 500, Y: 500}, Align: AlignCenter})
}

// emitLine lowers one lyric line into its show_text / change_color* /
// remove_text sequence (spec §4.7), at the Y row leased from C5.
// charOffset below assumes each syllable's rune length tiles line.Text
// with no separators; a line.Text containing inter-word spaces not
// also present in the syllables will drift the [StartChar,EndChar)
// highlight window past those spaces. Spec is silent on how word
// boundaries map into char offsets and original_source/ has nothing
// to disambiguate it.
func emitLine(b *commandBuilder, id string, line score.Line, t lineTiming, y int) {
	b.add(Command{TimestampMS: t.showTimeMS, priority: priorityShowText, Kind: ShowText,
		TextID: id, Text: line.Text, Position: Position{X: 500, Y: y}, Align: AlignCenter,
		Color: TransitionText})

	charOffset := 0
	for _, w := range line.Words {
		for _, syl := range w.Syllables {
			sylLen := len([]rune(syl.Text))
			if sylLen == 0 {
				continue
			}
			b.add(Command{TimestampMS: syl.StartMS, priority: priorityChangeColor, Kind: ChangeColor,
				TextID: id, StartChar: charOffset, EndChar: charOffset + sylLen, Color: ActiveText})
			charOffset += sylLen
		}
	}

	b.add(Command{TimestampMS: t.hideTimeMS, priority: priorityRemoveText, Kind: RemoveText, TextID: id})
}
