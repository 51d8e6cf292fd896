package compile

import (
	"sort"
	"strconv"
)

// commandBuilder accumulates commands and assigns text_ids, grounded on
// the teacher's AST-builder pattern of appending to a slice field
// (internal/corelx/parser.go's prog.Functions = append(...)).
type commandBuilder struct {
	commands []Command
	nextID   int
}

func (b *commandBuilder) newTextID(prefix string) string {
	b.nextID++
	return prefix + "_" + strconv.Itoa(b.nextID)
}

func (b *commandBuilder) add(c Command) {
	b.commands = append(b.commands, c)
}

// finalize sorts the accumulated commands by (timestamp, priority),
// which is a stable sort so commands emitted in the same tier at the
// same timestamp keep their insertion order (spec §5: "packets are
// emitted in a deterministic order").
func (b *commandBuilder) finalize() []Command {
	out := make([]Command, len(b.commands))
	copy(out, b.commands)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimestampMS != out[j].TimestampMS {
			return out[i].TimestampMS < out[j].TimestampMS
		}
		return out[i].priority < out[j].priority
	})
	return out
}
