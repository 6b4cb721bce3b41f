// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import "slices"

// Cluster groups found coordinates that lie within meters of any member of
// the same group, transitively. Groups keep document order and so do their
// members.
func Cluster(found []Found, meters float64) [][]Found {
	clusters := make([][]Found, 0, len(found))

	visited := make([]bool, len(found))

	for i := range found {
		if visited[i] {
			continue
		}

		members := []int{i}
		visited[i] = true

		for grown := true; grown; {
			grown = false

			for j := i + 1; j < len(found); j++ {
				if visited[j] {
					continue
				}

				for _, m := range members {
					if found[j].Point.HaversineDistance(&found[m].Point) <= meters {
						members = append(members, j)
						visited[j] = true
						grown = true

						break
					}
				}
			}
		}

		slices.Sort(members)

		cluster := make([]Found, 0, len(members))
		for _, m := range members {
			cluster = append(cluster, found[m])
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
