package rule

import "sort"

// symmetryPerms are the 8 permutations of the Moore bit positions (0=N,
// 1=NE, 2=E, 3=SE, 4=S, 5=SW, 6=W, 7=NW, clockwise) induced by the square's
// symmetry group: identity, the three non-trivial rotations, and the four
// axis reflections. This is the same group used for symmetry folding in
// the search package, applied here to neighbour bit positions instead of
// world coordinates.
var symmetryPerms = [8]func(int) int{
	func(p int) int { return p },
	func(p int) int { return (p + 2) % 8 },
	func(p int) int { return (p + 4) % 8 },
	func(p int) int { return (p + 6) % 8 },
	func(p int) int { return mod8(8 - p) },
	func(p int) int { return mod8(4 - p) },
	func(p int) int { return mod8(2 - p) },
	func(p int) int { return mod8(6 - p) },
}

func mod8(p int) int {
	p %= 8
	if p < 0 {
		p += 8
	}
	return p
}

func applyPerm(mask uint8, perm func(int) int) uint8 {
	var out uint8
	for p := 0; p < 8; p++ {
		if mask&(1<<uint(p)) != 0 {
			out |= 1 << uint(perm(p))
		}
	}
	return out
}

func canonicalOrbit(mask uint8) uint8 {
	best := mask
	for _, perm := range symmetryPerms {
		if m := applyPerm(mask, perm); m < best {
			best = m
		}
	}
	return best
}

func popcount8(m uint8) int {
	c := 0
	for m != 0 {
		c += int(m & 1)
		m >>= 1
	}
	return c
}

// henselCount holds, for one neighbour count 0..8, the canonical orbit
// representatives (sorted, so index 0 is letter 'a') and a lookup from a
// concrete 8-bit Moore pattern to its letter index.
type henselCount struct {
	orbits []uint8
	byMask map[uint8]int
}

var henselTable [9]henselCount

func init() {
	for n := 0; n <= 8; n++ {
		seen := map[uint8]bool{}
		var reps []uint8
		for m := 0; m < 256; m++ {
			mask := uint8(m)
			if popcount8(mask) != n {
				continue
			}
			rep := canonicalOrbit(mask)
			if !seen[rep] {
				seen[rep] = true
				reps = append(reps, rep)
			}
		}
		sort.Slice(reps, func(i, j int) bool { return reps[i] < reps[j] })

		byMask := make(map[uint8]int, 1<<uint(n))
		rank := make(map[uint8]int, len(reps))
		for i, r := range reps {
			rank[r] = i
		}
		for m := 0; m < 256; m++ {
			mask := uint8(m)
			if popcount8(mask) != n {
				continue
			}
			byMask[mask] = rank[canonicalOrbit(mask)]
		}
		henselTable[n] = henselCount{orbits: reps, byMask: byMask}
	}
}

// LetterIndex returns the 0-based Hensel letter index ('a' == 0) of the
// given neighbour count and concrete 8-bit Moore aliveness pattern.
//
// Golly's canonical letters (a, b, c, ...) are assigned by a specific
// historical convention; this package instead assigns letters in order of
// the orbit's smallest bitmask representative. The partition into
// isotropy classes is identical, only the labels differ, which is
// sufficient for parsing and evaluating Hensel rule strings consistently
// within this package - see DESIGN.md.
func LetterIndex(n int, mask uint8) int {
	return henselTable[n].byMask[mask]
}

// LetterCount returns how many distinct Hensel letters exist for a given
// neighbour count.
func LetterCount(n int) int {
	return len(henselTable[n].orbits)
}
