package ir

import "strconv"

// namer hands out deterministic fresh names: the first use of a prefix is
// bare, later ones get 2, 3, ...
type namer struct {
	counts map[string]int
}

func newNamer() namer {
	return namer{counts: make(map[string]int, 16)}
}

func (n *namer) fresh(prefix string) string {
	n.counts[prefix]++
	c := n.counts[prefix]
	if c == 1 {
		return prefix
	}
	return prefix + strconv.Itoa(c)
}
