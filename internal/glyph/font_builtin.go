package glyph

// Built-in 6-wide x 8-tall proportional bitmap font (spec §4.2). Each
// glyph is defined as 8 rows of '#'/'.' for readability and parsed once
// at init time into row bitmasks (bit 5 = leftmost column). Lowercase
// letters are not given distinct shapes — they render using the
// uppercase glyph of the same letter, a deliberate simplification — but
// keep the lowercase-specific proportional width
// spec.md's examples call out (e.g. "i"=2).

var builtinRows = map[rune][8]string{
	' ': {"......", "......", "......", "......", "......", "......", "......", "......"},
	'A': {"..#...", ".#.#..", "#...#.", "#...#.", "#####.", "#...#.", "#...#.", "......"},
	'B': {"####..", "#...#.", "#...#.", "####..", "#...#.", "#...#.", "####..", "......"},
	'C': {".###..", "#...#.", "#.....", "#.....", "#.....", "#...#.", ".###..", "......"},
	'D': {"####..", "#...#.", "#...#.", "#...#.", "#...#.", "#...#.", "####..", "......"},
	'E': {"#####.", "#.....", "#.....", "####..", "#.....", "#.....", "#####.", "......"},
	'F': {"#####.", "#.....", "#.....", "####..", "#.....", "#.....", "#.....", "......"},
	'G': {".###..", "#...#.", "#.....", "#.##..", "#...#.", "#...#.", ".###..", "......"},
	'H': {"#...#.", "#...#.", "#...#.", "#####.", "#...#.", "#...#.", "#...#.", "......"},
	'I': {".###..", "..#...", "..#...", "..#...", "..#...", "..#...", ".###..", "......"},
	'J': {"..###.", "...#..", "...#..", "...#..", "#..#..", "#..#..", ".##...", "......"},
	'K': {"#...#.", "#..#..", "#.#...", "##....", "#.#...", "#..#..", "#...#.", "......"},
	'L': {"#.....", "#.....", "#.....", "#.....", "#.....", "#.....", "#####.", "......"},
	'M': {"#...#.", "##.##.", "#.#.#.", "#...#.", "#...#.", "#...#.", "#...#.", "......"},
	'N': {"#...#.", "##..#.", "#.#.#.", "#..##.", "#...#.", "#...#.", "#...#.", "......"},
	'O': {".###..", "#...#.", "#...#.", "#...#.", "#...#.", "#...#.", ".###..", "......"},
	'P': {"####..", "#...#.", "#...#.", "####..", "#.....", "#.....", "#.....", "......"},
	'Q': {".###..", "#...#.", "#...#.", "#...#.", "#.#.#.", "#..#..", ".##.#.", "......"},
	'R': {"####..", "#...#.", "#...#.", "####..", "#.#...", "#..#..", "#...#.", "......"},
	'S': {".####.", "#.....", "#.....", ".###..", "....#.", "....#.", "####..", "......"},
	'T': {"#####.", "..#...", "..#...", "..#...", "..#...", "..#...", "..#...", "......"},
	'U': {"#...#.", "#...#.", "#...#.", "#...#.", "#...#.", "#...#.", ".###..", "......"},
	'V': {"#...#.", "#...#.", "#...#.", "#...#.", "#...#.", ".#.#..", "..#...", "......"},
	'W': {"#...#.", "#...#.", "#...#.", "#.#.#.", "#.#.#.", "##.##.", "#...#.", "......"},
	'X': {"#...#.", ".#.#..", "..#...", "..#...", "..#...", ".#.#..", "#...#.", "......"},
	'Y': {"#...#.", ".#.#..", "..#...", "..#...", "..#...", "..#...", "..#...", "......"},
	'Z': {"#####.", "....#.", "...#..", "..#...", ".#....", "#.....", "#####.", "......"},
	'0': {".###..", "#...#.", "#..##.", "#.#.#.", "##..#.", "#...#.", ".###..", "......"},
	'1': {"..#...", ".##...", "..#...", "..#...", "..#...", "..#...", ".###..", "......"},
	'2': {".###..", "#...#.", "....#.", "...#..", "..#...", ".#....", "#####.", "......"},
	'3': {"####..", "....#.", "...#..", "..##..", "....#.", "#...#.", ".###..", "......"},
	'4': {"...#..", "..##..", ".#.#..", "#..#..", "#####.", "...#..", "...#..", "......"},
	'5': {"#####.", "#.....", "####..", "....#.", "....#.", "#...#.", ".###..", "......"},
	'6': {"..##..", ".#....", "#.....", "####..", "#...#.", "#...#.", ".###..", "......"},
	'7': {"#####.", "....#.", "...#..", "..#...", ".#....", ".#....", ".#....", "......"},
	'8': {".###..", "#...#.", "#...#.", ".###..", "#...#.", "#...#.", ".###..", "......"},
	'9': {".###..", "#...#.", "#...#.", ".####.", "....#.", "...#..", "..##..", "......"},
	'.': {"......", "......", "......", "......", "......", "..##..", "..##..", "......"},
	',': {"......", "......", "......", "......", "..##..", "..##..", ".#....", "......"},
	'!': {"..#...", "..#...", "..#...", "..#...", "..#...", "......", "..#...", "......"},
	'?': {".###..", "#...#.", "....#.", "...#..", "..#...", "......", "..#...", "......"},
	'\'': {"..#...", "..#...", ".#....", "......", "......", "......", "......", "......"},
	'-': {"......", "......", "......", "#####.", "......", "......", "......", "......"},
}

// builtinWidths overrides the default full-cell width for characters
// whose natural shape is narrower or wider (spec §4.2 examples: "i"=2,
// "W"=6, space=3).
var builtinWidths = map[rune]int{
	' ':  3,
	'i':  2,
	'I':  3,
	'l':  2,
	'.':  2,
	',':  2,
	'\'': 2,
	'-':  4,
	'W':  6,
	'M':  6,
}

const defaultBuiltinWidth = 5

func builtinWidth(r rune) int {
	if w, ok := builtinWidths[r]; ok {
		return w
	}
	return defaultBuiltinWidth
}

// builtinShape returns the uppercase shape backing r, folding lowercase
// letters onto their uppercase glyph, and reports whether one exists.
func builtinShape(r rune) ([8]string, bool) {
	if r >= 'a' && r <= 'z' {
		r = r - 'a' + 'A'
	}
	rows, ok := builtinRows[r]
	return rows, ok
}

// parseRows turns the '#'/'.' row strings into per-pixel bool rows,
// trimmed to the glyph's configured width.
func parseRows(rows [8]string, width int) [8][]bool {
	var out [8][]bool
	for r, row := range rows {
		mask := make([]bool, width)
		for c := 0; c < width && c < len(row); c++ {
			mask[c] = row[c] == '#'
		}
		out[r] = mask
	}
	return out
}
