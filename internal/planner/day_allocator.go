package planner

// Start/end emphasis tiers: trips of at least MinDays spend Start days in the
// first city and End days in the last.
type dayTier struct {
	MinDays int
	Start   int
	End     int
}

var allocationTiers = []dayTier{
	{MinDays: 14, Start: 4, End: 3},
	{MinDays: 10, Start: 3, End: 2},
	{MinDays: 0, Start: 2, End: 1},
}

// AllocateSegmentDays splits duration across the route positions. The result
// always sums to duration and, since there are never more segments than
// days, every entry is at least 1. A route shorter than duration uses one
// segment per city; a longer one is cut to duration segments.
func AllocateSegmentDays(duration int, route []string) []int {
	if duration <= 0 {
		return nil
	}
	if len(route) <= 1 {
		return []int{duration}
	}

	segments := len(route)
	if segments > duration {
		segments = duration
	}
	if segments == 1 {
		return []int{duration}
	}
	if segments == 2 {
		first := (duration + 1) / 2
		return []int{first, duration - first}
	}

	var startDays, endDays int
	for _, t := range allocationTiers {
		if duration >= t.MinDays {
			startDays, endDays = t.Start, t.End
			break
		}
	}

	middleSegments := segments - 2
	if overflow := startDays + endDays + middleSegments - duration; overflow > 0 {
		trim := overflow
		if trim > startDays-1 {
			trim = startDays - 1
		}
		startDays -= trim
		overflow -= trim
		endDays -= overflow
		if endDays < 1 {
			endDays = 1
		}
	}

	remaining := duration - startDays - endDays
	base, extra := remaining/middleSegments, remaining%middleSegments

	out := make([]int, segments)
	out[0] = startDays
	for i := 0; i < middleSegments; i++ {
		out[i+1] = base
		if i < extra {
			out[i+1]++
		}
	}
	out[segments-1] = endDays
	return out
}
