package event

import "time"

// BusStats provides statistics about dispatches on a bus.
type BusStats struct {
	TypeCount       int
	TotalDispatches int64
	Types           []TypeStats
}

// TypeStats provides dispatch statistics for a single event type. Durations
// include nested dispatches triggered by handlers.
type TypeStats struct {
	Type          Type
	Subscribers   int
	Dispatches    int64
	Invocations   int64
	Stopped       int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type typeStatsInternal struct {
	dispatches    int64
	invocations   int64
	stopped       int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func newTypeStats() *typeStatsInternal {
	return &typeStatsInternal{minDuration: time.Duration(1<<63 - 1)}
}

func (s *typeStatsInternal) record(d time.Duration, invoked int, stopped bool) {
	s.dispatches++
	s.invocations += int64(invoked)
	if stopped {
		s.stopped++
	}
	s.lastDuration = d
	s.totalDuration += d

	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// Stats returns per-type dispatch statistics in the order types were first
// seen.
func (b *Bus) Stats() *BusStats {
	stats := &BusStats{
		TypeCount: len(b.seen),
		Types:     make([]TypeStats, len(b.seen)),
	}

	var total int64
	for i, t := range b.seen {
		internal := b.stats[t]
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.dispatches > 0 {
			avg = internal.totalDuration / time.Duration(internal.dispatches)
		} else {
			minDuration = 0
		}

		stats.Types[i] = TypeStats{
			Type:          t,
			Subscribers:   len(b.handlers[t]),
			Dispatches:    internal.dispatches,
			Invocations:   internal.invocations,
			Stopped:       internal.stopped,
			MinDuration:   minDuration,
			MaxDuration:   internal.maxDuration,
			AvgDuration:   avg,
			LastDuration:  internal.lastDuration,
			TotalDuration: internal.totalDuration,
		}
		total += internal.dispatches
	}

	stats.TotalDispatches = total
	return stats
}
