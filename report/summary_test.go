package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummaryFieldsOrderMatchesOutputCSV(t *testing.T) {
	s := Summary{
		Name:          "job-set-1",
		Schedulable:   true,
		NumJobs:       9,
		NumNodes:      12,
		NumEdges:      14,
		NumStates:     12,
		MaxWidth:      4,
		CPUTime:       2 * time.Millisecond,
		MemoryKiB:     512,
		TimedOut:      false,
		NumProcessors: 2,
	}

	fields := s.Fields()
	require.Len(t, fields, 11)
	require.Equal(t, "job-set-1", fields[0])
	require.Equal(t, 1, fields[1])
	require.Equal(t, 9, fields[2])
	require.Equal(t, 12, fields[3])
	require.Equal(t, 12, fields[4])
	require.Equal(t, 14, fields[5])
	require.Equal(t, 4, fields[6])
	require.Equal(t, 0, fields[9])
	require.Equal(t, 2, fields[10])
}

func TestSummaryFieldsMarksTimeout(t *testing.T) {
	s := Summary{TimedOut: true}
	fields := s.Fields()
	require.Equal(t, 1, fields[9])
}
