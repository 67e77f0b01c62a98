package feastest

import (
	"sort"

	"github.com/knokko/sagrepair/timeval"
)

// IsCertainlyUnpackable reports whether items certainly cannot fit into
// numProcessors bins of size binSize. A false result does not mean the
// items *can* be packed, only that this lower-bound test found no proof
// of infeasibility. items is sorted in place.
func IsCertainlyUnpackable[T timeval.Time[T]](numProcessors int, binSize T, items []T) bool {
	if len(items) == 0 {
		return false
	}

	var total T
	for _, item := range items {
		if timeval.Less(binSize, item) {
			return true
		}
		total = total.Add(item)
	}
	if len(items) <= numProcessors {
		return false
	}

	var capacity T
	for i := 0; i < numProcessors; i++ {
		capacity = capacity.Add(binSize)
	}
	if timeval.Less(capacity, total) {
		return true
	}
	if numProcessors == 1 {
		return false
	}

	sort.Slice(items, func(i, j int) bool { return timeval.Less(items[i], items[j]) })
	if len(items) <= 2 {
		return false
	}

	if len(items) == 3 {
		return timeval.Less(binSize, items[0].Add(items[1]))
	}

	smallest2 := timeval.Min(items[2], items[0].Add(items[1]))
	var minWastedSpace T
	for idx := len(items) - 1; idx > 0; idx-- {
		duration := items[idx]

		if timeval.Less(binSize, duration.Add(items[0])) {
			minWastedSpace = minWastedSpace.Add(binSize.Sub(duration))
			continue
		}

		if idx > 1 && timeval.Less(binSize, duration.Add(items[1])) {
			minWastedSpace = minWastedSpace.Add(binSize.Sub(items[0]).Sub(duration))
			continue
		}

		if idx > 2 && timeval.Less(binSize, duration.Add(smallest2)) {
			minWastedSpace = minWastedSpace.Add(binSize.Sub(items[1]).Sub(duration))
		}
	}

	return timeval.Less(capacity, total.Add(minWastedSpace))
}
