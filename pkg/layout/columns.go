package layout

// Allocate partitions heights into at most columns contiguous groups of
// indices, minimizing the largest group sum.
//
// The minimal capacity is found by binary search over [max, sum] with a
// greedy feasibility test; a final greedy pass at that capacity builds the
// groups. Fewer groups than columns are returned when the minimal capacity
// does not need them all. A height larger than every candidate capacity is
// still placed, alone, in its own group. columns below one is treated as one.
func Allocate(heights []int, columns int) [][]int {
	if len(heights) == 0 {
		return nil
	}
	return pack(heights, Capacity(heights, columns))
}

// Capacity returns the smallest maximum group sum achievable when heights
// are split into at most columns contiguous groups.
func Capacity(heights []int, columns int) int {
	columns = max(columns, 1)
	lo, hi := 0, 0
	for _, h := range heights {
		lo = max(lo, h)
		hi += h
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		if len(pack(heights, mid)) <= columns {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// pack greedily fills groups up to limit, opening a new group whenever the
// next height would overflow a non-empty one.
func pack(heights []int, limit int) [][]int {
	var (
		out []int
		all [][]int
		sum int
	)
	for i, h := range heights {
		if sum+h > limit && len(out) > 0 {
			all = append(all, out)
			out, sum = nil, 0
		}
		out = append(out, i)
		sum += h
	}
	return append(all, out)
}
