// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// CounterSource is implemented by devices that count submitted work.
type CounterSource interface {
	Counters() Counters
	ResetCounters()
}

// Stats accumulates the work counters of a device frame by frame.
type Stats struct {
	// Frames is the number of collected frames.
	Frames uint64
	// Last holds the counters of the most recent frame.
	Last Counters
	// Total holds the counters summed over all frames.
	Total Counters
}

// Collect ends a frame: it moves the counters of src into s and
// resets them.
func (s *Stats) Collect(src CounterSource) {
	c := src.Counters()
	src.ResetCounters()
	s.Frames++
	s.Last = c
	s.Total.Primitives += c.Primitives
	s.Total.Vertices += c.Vertices
}

// AveragePrimitives returns the mean number of primitives drawn per
// frame.
func (s *Stats) AveragePrimitives() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.Total.Primitives) / float64(s.Frames)
}
