package fat12

import "fmt"

// WalkChain produces the ordered list of cluster indices belonging to a
// file or subdirectory starting at firstCluster. It stores only real
// cluster numbers, never the terminal marker, correcting the source's
// off-by-one (which stored the EOC entry as a node and subtracted one from
// the length).
//
// The walk is bounded by maxDataCluster (the highest addressable cluster):
// it reports ErrCorruptChain if a cycle, an out-of-range cluster, or a
// reserved/bad cluster value is produced before a terminal entry is seen.
func WalkChain(table *FatTable, firstCluster uint16, maxDataCluster uint16) ([]uint16, error) {
	// The hard bound on iterations: a well-formed chain can visit at most
	// every data cluster once.
	limit := int(maxDataCluster) - firstDataCluster + 1
	if limit < 1 {
		limit = 1
	}

	chain := make([]uint16, 0, limit)
	seen := make(map[uint16]bool, limit)

	cur := firstCluster
	for {
		if cur < firstDataCluster || cur > maxDataCluster {
			return nil, fmt.Errorf("fat12: cluster %d outside valid range [%d, %d]: %w", cur, firstDataCluster, maxDataCluster, ErrCorruptChain)
		}
		if seen[cur] {
			return nil, fmt.Errorf("fat12: cluster %d revisited, chain cycles: %w", cur, ErrCorruptChain)
		}
		seen[cur] = true
		chain = append(chain, cur)

		if len(chain) > limit {
			return nil, fmt.Errorf("fat12: chain exceeds %d clusters, the total addressable by this image: %w", limit, ErrCorruptChain)
		}

		next, err := table.ReadEntry(cur)
		if err != nil {
			return nil, err
		}
		if isEndOfChain(next) {
			return chain, nil
		}
		if next == clusterFree || next == clusterReserved || next == clusterBad {
			return nil, fmt.Errorf("fat12: cluster %d points to reserved/bad value 0x%03X: %w", cur, next, ErrCorruptChain)
		}
		cur = next
	}
}
