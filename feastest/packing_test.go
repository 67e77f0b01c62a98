package feastest

import (
	"testing"

	"github.com/knokko/sagrepair/timeval"
	"github.com/stretchr/testify/require"
)

func ints(vs ...int64) []timeval.Int64 {
	out := make([]timeval.Int64, len(vs))
	for i, v := range vs {
		out[i] = timeval.Int64(v)
	}
	return out
}

func TestPackingEmptyIsPackable(t *testing.T) {
	require.False(t, IsCertainlyUnpackable(1, timeval.Int64(10), ints()))
}

func TestPackingOversizedItemIsUnpackable(t *testing.T) {
	require.True(t, IsCertainlyUnpackable(1, timeval.Int64(10), ints(11)))
}

func TestPackingTotalExceedsCapacity(t *testing.T) {
	require.True(t, IsCertainlyUnpackable(2, timeval.Int64(10), ints(8, 8, 8)))
}

func TestPackingTwoOfThreeExceedBinOnSingleBin(t *testing.T) {
	// m=2, 3 items: unpackable iff the two smallest exceed the bin.
	require.True(t, IsCertainlyUnpackable(2, timeval.Int64(10), ints(6, 6, 5)))
	require.False(t, IsCertainlyUnpackable(2, timeval.Int64(10), ints(3, 3, 3)))
}

func TestPackingFitsWhenItemsLessOrEqualProcessors(t *testing.T) {
	require.False(t, IsCertainlyUnpackable(4, timeval.Int64(10), ints(9, 9, 9)))
}

func TestPackingWastedSpaceFourItems(t *testing.T) {
	// m=2, bin=10: items 2,6,6,6 sum to exactly capacity (20) but no two
	// 6's can share a bin, forcing unavoidable waste that pushes the
	// effective requirement past capacity.
	require.True(t, IsCertainlyUnpackable(2, timeval.Int64(10), ints(2, 6, 6, 6)))
}

func TestPackingFourItemsThatDoFit(t *testing.T) {
	require.False(t, IsCertainlyUnpackable(2, timeval.Int64(10), ints(1, 1, 9, 9)))
}
