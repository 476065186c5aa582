package editdist

import (
	"fmt"
	"math"
)

type Kind uint8

const (
	Match Kind = iota
	Substitute
	Delete
	Insert
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "Match"
	case Substitute:
		return "Substitute"
	case Delete:
		return "Delete"
	case Insert:
		return "Insert"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Op is one step of an alignment. Delete leaves Generated zero and Insert
// leaves Correct zero.
type Op struct {
	Kind      Kind
	Correct   rune
	Generated rune
}

func (o Op) String() string {
	switch o.Kind {
	case Match:
		return fmt.Sprintf("=%q", o.Correct)
	case Substitute:
		return fmt.Sprintf("%q>%q", o.Correct, o.Generated)
	case Delete:
		return fmt.Sprintf("-%q", o.Correct)
	case Insert:
		return fmt.Sprintf("+%q", o.Generated)
	}
	return o.Kind.String()
}

// Align returns a minimal edit script turning correct into generated. When
// several scripts are optimal, each back-trace step from the end prefers
// Match, then Substitute, then Delete, then Insert.
//
// The forward pass keeps one band row out of every sqrt(m); the back-trace
// recomputes one block of rows at a time from those checkpoints.
func Align(correct []rune, generated []rune) []Op {
	a, b := correct, generated
	m, n := len(a), len(b)
	bd, _ := fit(a, b)
	w := bd.width()

	step := blockSize(m)
	marks := make([][]int32, m/step+1)
	prev, cur := make([]int32, w), make([]int32, w)
	bd.row(a, b, 0, nil, prev)
	marks[0] = append([]int32(nil), prev...)
	for i := 1; i <= m; i++ {
		bd.row(a, b, i, prev, cur)
		prev, cur = cur, prev
		if i%step == 0 {
			marks[i/step] = append([]int32(nil), prev...)
		}
	}

	ops := make([]Op, 0, max(m, n))
	rows := make([][]int32, step+1)
	for r := range rows {
		rows[r] = make([]int32, w)
	}
	i, j := m, n
	for i > 0 {
		start := (i - 1) / step * step
		copy(rows[0], marks[start/step])
		for r := start + 1; r <= i; r++ {
			bd.row(a, b, r, rows[r-start-1], rows[r-start])
		}
		for i > start {
			up, here := rows[i-1-start], rows[i-start]
			x := bd.at(i, j)
			d := here[x]
			if j > 0 {
				if a[i-1] == b[j-1] && up[x] == d {
					ops = append(ops, Op{Match, a[i-1], b[j-1]})
					i, j = i-1, j-1
					continue
				}
				if a[i-1] != b[j-1] && up[x]+1 == d {
					ops = append(ops, Op{Substitute, a[i-1], b[j-1]})
					i, j = i-1, j-1
					continue
				}
			}
			if x+1 < w && up[x+1]+1 == d {
				ops = append(ops, Op{Kind: Delete, Correct: a[i-1]})
				i--
				continue
			}
			ops = append(ops, Op{Kind: Insert, Generated: b[j-1]})
			j--
		}
	}
	for ; j > 0; j-- {
		ops = append(ops, Op{Kind: Insert, Generated: b[j-1]})
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

func blockSize(m int) int {
	s := int(math.Sqrt(float64(m)))
	if s < 1 {
		return 1
	}
	return s
}

// Replay rebuilds both documents from an edit script.
func Replay(ops []Op) ([]rune, []rune) {
	correct := make([]rune, 0, len(ops))
	generated := make([]rune, 0, len(ops))
	for _, o := range ops {
		switch o.Kind {
		case Match, Substitute:
			correct = append(correct, o.Correct)
			generated = append(generated, o.Generated)
		case Delete:
			correct = append(correct, o.Correct)
		case Insert:
			generated = append(generated, o.Generated)
		}
	}
	return correct, generated
}

// Cost counts the operations that are not matches.
func Cost(ops []Op) int {
	c := 0
	for _, o := range ops {
		if o.Kind != Match {
			c++
		}
	}
	return c
}
