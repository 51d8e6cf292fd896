package compile

import "cdgen/internal/score"

// LeadInMS is the fixed lead-in before a line's earliest syllable at
// which its show_text command fires (spec §4.7 default).
const LeadInMS = 1000

// defaultSyllableDurationMS backs score.Line.HighlightEnd's fallback for
// syllables with no explicit end time. The spec leaves this constant
// unspecified; 500ms approximates one sung syllable (documented as an
// Open Question resolution in DESIGN.md).
const defaultSyllableDurationMS = 500

// lineTiming holds the computed show/hide boundary for one line.
type lineTiming struct {
	showTimeMS int64
	hideTimeMS int64
}

// computeLineTimings implements spec §4.7's show_time/hide_time rules
// for every line, given the immediately following line's show time (or
// none for the last line).
func computeLineTimings(lines []score.Line) []lineTiming {
	out := make([]lineTiming, len(lines))
	highlightStarts := make([]int64, len(lines))
	highlightEnds := make([]int64, len(lines))
	for i, l := range lines {
		highlightStarts[i] = l.HighlightStart()
		highlightEnds[i] = l.HighlightEnd(defaultSyllableDurationMS)
	}

	for i := range lines {
		showTime := highlightStarts[i] - LeadInMS
		if showTime < 0 {
			showTime = 0
		}

		var hideTime int64
		if i+1 < len(lines) {
			nextShow := highlightStarts[i+1] - LeadInMS
			if nextShow < 0 {
				nextShow = 0
			}
			hideTime = highlightEnds[i] + 300
			if alt := nextShow - 100; alt > hideTime {
				hideTime = alt
			}
			if capMS := highlightEnds[i] + 1500; hideTime > capMS {
				hideTime = capMS
			}
		} else {
			hideTime = highlightEnds[i] + 2000
		}

		out[i] = lineTiming{showTimeMS: showTime, hideTimeMS: hideTime}
	}
	return out
}
