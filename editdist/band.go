package editdist

import "math"

const inf = math.MaxInt32 / 2

// band restricts the table to the diagonals k = j-i in [lo, hi]. Every path
// of cost at most t from (0,0) to (m,n) stays inside the band built for t,
// since reaching diagonal k costs at least |k| + |n-m-k|.
type band struct {
	m, n   int
	lo, hi int
}

func newBand(m, n, t int) band {
	delta := n - m
	slack := (t - abs(delta)) / 2
	return band{m: m, n: n, lo: min(0, delta) - slack, hi: max(0, delta) + slack}
}

func (bd band) width() int {
	return bd.hi - bd.lo + 1
}

// Returns true if the band holds every cell of the table
func (bd band) full() bool {
	return bd.lo <= -bd.m && bd.hi >= bd.n
}

// Offset of column j within row i
func (bd band) at(i, j int) int {
	return j - i - bd.lo
}

// row fills cur with row i of the table. prev holds row i-1 and is not read
// for the first row.
func (bd band) row(a, b []rune, i int, prev, cur []int32) {
	for x := range cur {
		j := i + bd.lo + x
		switch {
		case j < 0 || j > bd.n:
			cur[x] = inf
		case i == 0:
			cur[x] = int32(j)
		case j == 0:
			cur[x] = int32(i)
		default:
			d := prev[x]
			if a[i-1] != b[j-1] {
				d++
			}
			if x+1 < len(prev) && prev[x+1]+1 < d {
				d = prev[x+1] + 1
			}
			if x > 0 && cur[x-1]+1 < d {
				d = cur[x-1] + 1
			}
			cur[x] = d
		}
	}
}

func (bd band) distance(a, b []rune) int {
	w := bd.width()
	prev, cur := make([]int32, w), make([]int32, w)
	bd.row(a, b, 0, nil, prev)
	for i := 1; i <= bd.m; i++ {
		bd.row(a, b, i, prev, cur)
		prev, cur = cur, prev
	}
	return int(prev[bd.at(bd.m, bd.n)])
}

// fit doubles the band until the distance found inside it is no larger than
// the band's budget, which makes that distance exact.
func fit(a, b []rune) (band, int) {
	m, n := len(a), len(b)
	t := abs(n-m) + 8
	for {
		bd := newBand(m, n, t)
		d := bd.distance(a, b)
		if d <= t || bd.full() {
			return bd, d
		}
		t *= 2
	}
}

func abs(n int) int {
	if n >= 0 {
		return n
	} else {
		return -n
	}
}
