package cluster

import (
	"math/rand"
	"testing"

	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

// offset returns a point dy/dx meters north/east of base (small-distance approximation).
func offset(base spatial.Point, dyMeters, dxMeters float64) spatial.Point {
	return spatial.Point{
		Lat: base.Lat + spatial.LatDegreesForKm(dyMeters/1000),
		Lng: base.Lng + spatial.LngDegreesForKm(dxMeters/1000, base.Lat),
	}
}

func TestPartitionIsPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := spatial.Point{Lat: 19.07, Lng: 72.87}

	pts := make([]Point, 200)
	for i := range pts {
		pts[i] = Point{
			Location: offset(base, rng.Float64()*3000, rng.Float64()*3000),
			Weight:   1,
			Index:    i,
		}
	}

	clusters := Partition(pts, Options{RadiusMeters: 250})

	seen := make(map[int]int)
	for _, c := range clusters {
		for _, m := range c.Members {
			seen[m.Index]++
		}
	}
	if len(seen) != len(pts) {
		t.Fatalf("covered %d points, want %d", len(seen), len(pts))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("point %d assigned %d times", idx, n)
		}
	}
}

func TestPartitionMembersWithinRadiusOfSeed(t *testing.T) {
	base := spatial.Point{Lat: 28.61, Lng: 77.20}
	pts := []Point{
		{Location: base, Index: 0},
		{Location: offset(base, 60, 0), Index: 1},
		{Location: offset(base, 0, 90), Index: 2},
		{Location: offset(base, 500, 500), Index: 3},
	}

	clusters := Partition(pts, Options{RadiusMeters: 100})
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if clusters[0].Size() != 3 {
		t.Errorf("first cluster size = %d, want 3", clusters[0].Size())
	}
	seed := clusters[0].Members[0].Location
	for _, m := range clusters[0].Members {
		if d := spatial.DistanceMeters(seed, m.Location); d > 100 {
			t.Errorf("member %d is %.1fm from seed", m.Index, d)
		}
	}
	// singleton keeps the seed as its centre
	if clusters[1].Center != pts[3].Location {
		t.Errorf("singleton center = %+v", clusters[1].Center)
	}
}

func TestPartitionMinMembers(t *testing.T) {
	base := spatial.Point{Lat: 12.97, Lng: 77.59}
	var pts []Point
	for i := 0; i < 4; i++ {
		pts = append(pts, Point{Location: offset(base, float64(i*20), 0), Weight: 1, Index: i})
	}

	if got := Partition(pts, Options{RadiusMeters: 500, MinMembers: 5}); len(got) != 0 {
		t.Errorf("4 points with minimum 5 produced %d clusters", len(got))
	}
	got := Partition(pts, Options{RadiusMeters: 500, MinMembers: 4})
	if len(got) != 1 || got[0].TotalWeight() != 4 {
		t.Errorf("unexpected clusters %+v", got)
	}
}

func TestPartitionCentroid(t *testing.T) {
	pts := []Point{
		{Location: spatial.Point{Lat: 10.000, Lng: 20.000}},
		{Location: spatial.Point{Lat: 10.001, Lng: 20.001}},
	}
	got := Partition(pts, Options{RadiusMeters: 1000})
	want := spatial.Point{Lat: 10.0005, Lng: 20.0005}
	if len(got) != 1 || spatial.DistanceMeters(got[0].Center, want) > 0.01 {
		t.Errorf("center = %+v, want %+v", got, want)
	}
}

func TestPartitionSeedOrder(t *testing.T) {
	// A-B 80m, B-C 80m, A-C 160m: seeding at B swallows all three.
	a := spatial.Point{Lat: 0, Lng: 0}
	pts := []Point{
		{Location: a, Weight: 1, Index: 0},
		{Location: offset(a, 80, 0), Weight: 3, Index: 1},
		{Location: offset(a, 160, 0), Weight: 1, Index: 2},
	}

	inOrder := Partition(pts, Options{RadiusMeters: 100})
	if len(inOrder) != 2 {
		t.Fatalf("input order: %d clusters, want 2", len(inOrder))
	}

	heaviest := Partition(pts, Options{
		RadiusMeters: 100,
		Less:         func(x, y Point) bool { return x.Weight > y.Weight },
	})
	if len(heaviest) != 1 || heaviest[0].Size() != 3 {
		t.Errorf("weight order: %+v", heaviest)
	}
	if pts[0].Index != 0 {
		t.Error("input slice was reordered")
	}
}

func TestPartitionEmpty(t *testing.T) {
	if got := Partition(nil, Options{RadiusMeters: 100}); got != nil {
		t.Errorf("Partition(nil) = %+v", got)
	}
}
