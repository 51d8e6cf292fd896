package compile

import (
	"testing"

	"cdgen/internal/lease"
	"cdgen/internal/score"
)

func TestSingleLineOrdering(t *testing.T) {
	s := score.Score{Lines: []score.Line{{
		Text:    "hi",
		StartMS: 0,
		Words: []score.Word{{
			StartMS: 500,
			Syllables: []score.Syllable{
				{StartMS: 500, EndMS: 700, Text: "h"},
				{StartMS: 700, EndMS: 1000, Text: "i"},
			},
		}},
	}}}

	cmds := Compile(s, lease.New(lease.Pool))
	if len(cmds) != 4 {
		t.Fatalf("got %d commands, want 4 (show, 2x change_color, remove)", len(cmds))
	}
	if cmds[0].Kind != ShowText {
		t.Errorf("first command kind = %v, want ShowText", cmds[0].Kind)
	}
	if cmds[0].TimestampMS != 0 { // show_time = max(0, 500-1000) = 0
		t.Errorf("show_time = %d, want 0", cmds[0].TimestampMS)
	}
	for i := 1; i < 3; i++ {
		if cmds[i].Kind != ChangeColor {
			t.Errorf("command %d kind = %v, want ChangeColor", i, cmds[i].Kind)
		}
	}
	last := cmds[len(cmds)-1]
	if last.Kind != RemoveText {
		t.Errorf("last command kind = %v, want RemoveText", last.Kind)
	}
}

func TestCommandsSortedByTimestampThenPriority(t *testing.T) {
	s := score.Score{Lines: []score.Line{{
		Text: "a", StartMS: 0,
		Words: []score.Word{{Syllables: []score.Syllable{{StartMS: 2000, EndMS: 2100, Text: "a"}}}},
	}}}
	cmds := Compile(s, lease.New(lease.Pool))
	for i := 1; i < len(cmds); i++ {
		if cmds[i].TimestampMS < cmds[i-1].TimestampMS {
			t.Fatalf("commands not sorted: %d before %d", cmds[i-1].TimestampMS, cmds[i].TimestampMS)
		}
	}
}

func TestMetadataPrecedesFirstLine(t *testing.T) {
	s := score.Score{
		Title: "Song Title",
		Lines: []score.Line{{
			Text: "x", StartMS: 0,
			Words: []score.Word{{Syllables: []score.Syllable{{StartMS: 3000, Text: "x"}}}},
		}},
	}
	cmds := Compile(s, lease.New(lease.Pool))
	if cmds[0].Kind != ShowText || cmds[0].Text != "Song Title" {
		t.Fatalf("expected title show_text first, got %+v", cmds[0])
	}
}

func TestLastLineHideUsesTailDefault(t *testing.T) {
	s := score.Score{Lines: []score.Line{{
		Text: "only", StartMS: 0,
		Words: []score.Word{{Syllables: []score.Syllable{{StartMS: 0, EndMS: 500, Text: "only"}}}},
	}}}
	cmds := Compile(s, lease.New(lease.Pool))
	last := cmds[len(cmds)-1]
	if last.Kind != RemoveText {
		t.Fatalf("expected RemoveText last, got %v", last.Kind)
	}
	if last.TimestampMS != 500+2000 {
		t.Errorf("hide_time = %d, want %d", last.TimestampMS, 500+2000)
	}
}
