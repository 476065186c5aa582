package editdist

// Full Levenshtein table. Quadratic in memory, so it is only used for short
// inputs and as the reference the banded code is checked against.
func levenshtein(a []rune, b []rune) [][]int {
	dist := make([][]int, len(a)+1)
	dist[0] = make([]int, len(b)+1)
	for j := 0; j < len(b)+1; j++ {
		dist[0][j] = j // First row
	}
	for i := 1; i < len(a)+1; i++ {
		dist[i] = make([]int, len(b)+1)
		dist[i][0] = i // First col
		for j := 1; j < len(b)+1; j++ {
			ins := dist[i][j-1] + 1
			del := dist[i-1][j] + 1
			sub := dist[i-1][j-1]
			if a[i-1] != b[j-1] {
				sub += 1
			}
			dist[i][j] = min(sub, min(del, ins))
		}
	}
	return dist
}

// Levenshtein returns the edit distance between a and b counted in
// codepoints. Memory is one band-wide row at a time.
func Levenshtein(a []rune, b []rune) int {
	_, d := fit(a, b)
	return d
}

// CER is the character error rate of a text whose distance to the truth is
// dist and whose truth has n characters.
func CER(dist int, n int) float64 {
	if dist == 0 {
		return 0.0 // Perfect match
	} else if n == 0 {
		return 1.0 // 100% error if should be empty and not
	} else {
		return float64(dist) / float64(n)
	}
}
