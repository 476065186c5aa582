package ci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ughe/ocreval/accrpt"
)

func TestDistribution(t *testing.T) {
	d := Distribution([]Obs{{10, 1}, {30, 0}})
	assert.Equal(t, int64(40), d.Total)
	assert.Equal(t, int64(40), d.Counts[0])
	assert.Equal(t, int64(40), d.Counts[90])
	assert.Equal(t, int64(30), d.Counts[91])
	assert.Equal(t, int64(30), d.Counts[100])

	lines := strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n")
	require.Len(t, lines, 101)
	assert.Equal(t, "  0 100.00", lines[0])
	assert.Equal(t, " 90 100.00", lines[90])
	assert.Equal(t, " 91  75.00", lines[91])
	assert.Equal(t, "100  75.00", lines[100])
}

func TestDistributionEdges(t *testing.T) {
	t.Run("Should print nothing without characters", func(t *testing.T) {
		d := Distribution([]Obs{{0, 0}})
		assert.Empty(t, d.String())
		assert.Equal(t, 0.0, d.Share(50))
	})
	t.Run("Should count negative accuracy only in the total", func(t *testing.T) {
		d := Distribution([]Obs{{2, 5}, {2, 0}})
		assert.Equal(t, int64(4), d.Total)
		assert.Equal(t, int64(2), d.Counts[0])
		assert.Equal(t, 50.0, d.Share(0))
	})
	t.Run("Should match observations from reports", func(t *testing.T) {
		obs := Observations([]*accrpt.Report{
			accrpt.Score([]rune("abcd"), []rune("abce")),
			accrpt.Score([]rune("xyz"), []rune("xyz")),
		})
		d := Distribution(obs)
		assert.Equal(t, int64(7), d.Total)
		assert.Equal(t, int64(7), d.Counts[75])
		assert.Equal(t, int64(3), d.Counts[76])
	})
}
