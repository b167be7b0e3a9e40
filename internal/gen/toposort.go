package gen

import (
	"errors"
	"fmt"
	"slices"
)

// topoSort orders n nodes so that every node comes after the nodes
// deps(i) returns. Among ready nodes the smallest index goes first, so the
// order is deterministic. A cycle is an error.
func topoSort(n int, deps func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	pending := make([]int, n)
	dependents := make([][]int, n)

	for i := range n {
		for _, d := range deps(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			pending[i]++
			dependents[d] = append(dependents[d], i)
		}
	}

	var ready []int

	for i, p := range pending {
		if p == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, i)

		for _, j := range dependents[i] {
			if pending[j]--; pending[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("cycle detected")
	}

	return order, nil
}
