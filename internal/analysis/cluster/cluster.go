// Package cluster groups nearby points with a greedy single-pass sweep.
//
// The first unassigned point (in seed order) starts a cluster and absorbs
// every unassigned point within Radius of that seed. The result therefore
// depends on seed order; callers that need a different order pass Less.
package cluster

import (
	"sort"

	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

// Point is one input to the sweep. Index is the caller's handle back to its record.
type Point struct {
	Location spatial.Point
	Weight   float64
	Index    int
}

// Cluster is a group of points and their centre.
type Cluster struct {
	Center  spatial.Point
	Members []Point
}

// Size returns the number of members.
func (c Cluster) Size() int {
	return len(c.Members)
}

// TotalWeight sums member weights.
func (c Cluster) TotalWeight() float64 {
	var w float64
	for _, m := range c.Members {
		w += m.Weight
	}
	return w
}

// Options controls a sweep.
type Options struct {
	RadiusMeters float64
	// MinMembers drops smaller clusters. Values <= 1 keep every cluster,
	// which makes the output a partition of the input.
	MinMembers int
	// Less, when set, orders seeds. Ties keep input order.
	Less func(a, b Point) bool
}

// Partition runs the sweep over points and returns clusters in seed order.
func Partition(points []Point, opts Options) []Cluster {
	if len(points) == 0 {
		return nil
	}

	order := make([]Point, len(points))
	copy(order, points)
	if opts.Less != nil {
		sort.SliceStable(order, func(i, j int) bool { return opts.Less(order[i], order[j]) })
	}

	assigned := make([]bool, len(order))
	var clusters []Cluster

	for i, seed := range order {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []Point{seed}

		for j := i + 1; j < len(order); j++ {
			if assigned[j] {
				continue
			}
			if spatial.DistanceMeters(seed.Location, order[j].Location) <= opts.RadiusMeters {
				assigned[j] = true
				members = append(members, order[j])
			}
		}

		if len(members) < opts.MinMembers {
			continue
		}

		center := seed.Location
		if len(members) > 1 {
			locs := make([]spatial.Point, len(members))
			for k, m := range members {
				locs[k] = m.Location
			}
			center = spatial.Centroid(locs)
		}
		clusters = append(clusters, Cluster{Center: center, Members: members})
	}

	return clusters
}
