package cluster

import (
	"math"
	"testing"

	"github.com/morepixel/BudgetOverlander/internal/shared/geo"
	"github.com/morepixel/BudgetOverlander/internal/track"
)

func trackAt(id int64, lat, lon float64, lengthKm float64, difficulty int, name string) track.Track {
	return track.Track{
		ID:         id,
		Name:       name,
		LengthKm:   lengthKm,
		Difficulty: difficulty,
		Center:     geo.Point{Lat: lat, Lon: lon},
	}
}

func TestGroupNearbyTracksIntoOneCluster(t *testing.T) {
	// five centers all within 10 km of each other, radius 20 km
	tracks := []track.Track{
		trackAt(1, 42.50, 1.50, 5, 40, "Pista Alta"),
		trackAt(2, 42.52, 1.52, 3, 50, "Unbenannt"),
		trackAt(3, 42.54, 1.48, 4, 60, ""),
		trackAt(4, 42.48, 1.51, 2, 30, "Camí Vell"),
		trackAt(5, 42.51, 1.55, 6, 45, "Unbenannt"),
	}

	clusters := Group(tracks, 20)
	if len(clusters) != 1 {
		t.Fatalf("expected single cluster, got %d", len(clusters))
	}

	c := clusters[0]
	if c.ID != "cluster_1" || c.TrackCount != 5 {
		t.Fatalf("unexpected cluster: id=%s count=%d", c.ID, c.TrackCount)
	}
	if c.TotalLengthKm != 20 {
		t.Fatalf("expected total 20 km, got %v", c.TotalLengthKm)
	}
	if c.AvgDifficulty != 45 {
		t.Fatalf("expected avg difficulty 45, got %d", c.AvgDifficulty)
	}
	if c.NearestTown != "Pista Alta" {
		t.Fatalf("expected first named track as town label, got %s", c.NearestTown)
	}

	wantLat := (42.50 + 42.52 + 42.54 + 42.48 + 42.51) / 5
	if math.Abs(c.Center.Lat-wantLat) > 1e-9 {
		t.Fatalf("centroid lat %v, want %v", c.Center.Lat, wantLat)
	}
	if c.BBox.MinLat != 42.48 || c.BBox.MaxLat != 42.54 || c.BBox.MinLon != 1.48 || c.BBox.MaxLon != 1.55 {
		t.Fatalf("unexpected bbox: %+v", c.BBox)
	}
}

func TestGroupFarTracksBecomeSingletons(t *testing.T) {
	// two centers ~100 km apart, radius 20 km
	tracks := []track.Track{
		trackAt(1, 42.5, 1.5, 5, 40, ""),
		trackAt(2, 43.4, 1.5, 3, 50, ""),
	}

	clusters := Group(tracks, 20)
	if len(clusters) != 2 {
		t.Fatalf("expected two singleton clusters, got %d", len(clusters))
	}
	for _, c := range clusters {
		if c.TrackCount != 1 {
			t.Fatalf("expected singleton, got %d members", c.TrackCount)
		}
		if c.NearestTown != "Unbekannt" {
			t.Fatalf("expected unknown town label, got %s", c.NearestTown)
		}
	}
}

func TestGroupPartitionInvariant(t *testing.T) {
	tracks := []track.Track{
		trackAt(1, 42.50, 1.50, 5, 40, ""),
		trackAt(2, 42.52, 1.52, 3, 50, ""),
		trackAt(3, 43.40, 1.50, 4, 60, ""),
		trackAt(4, 43.41, 1.51, 2, 30, ""),
		trackAt(5, 44.90, 2.50, 6, 45, ""),
	}

	clusters := Group(tracks, 20)

	seen := map[int64]int{}
	total := 0
	var lengthSum float64
	for _, c := range clusters {
		if c.TrackCount == 0 {
			t.Fatalf("empty cluster produced")
		}
		total += c.TrackCount
		var memberLength float64
		for _, m := range c.Tracks {
			seen[m.ID]++
			memberLength += m.LengthKm
		}
		if math.Abs(c.TotalLengthKm-memberLength) > 1e-9 {
			t.Fatalf("length not conserved for %s", c.ID)
		}
		lengthSum += c.TotalLengthKm
	}

	if total != len(tracks) {
		t.Fatalf("partition broken: %d members across clusters, %d tracks in", total, len(tracks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("track %d in %d clusters", id, n)
		}
	}
	if math.Abs(lengthSum-20) > 1e-9 {
		t.Fatalf("total length not conserved: %v", lengthSum)
	}
}

func TestGroupDeterministicForFixedOrder(t *testing.T) {
	tracks := []track.Track{
		trackAt(1, 42.50, 1.50, 5, 40, ""),
		trackAt(2, 42.52, 1.52, 3, 50, ""),
		trackAt(3, 42.65, 1.65, 4, 60, ""),
		trackAt(4, 43.40, 1.50, 2, 30, ""),
	}

	first := Group(tracks, 20)
	for run := 0; run < 5; run++ {
		again := Group(tracks, 20)
		if len(again) != len(first) {
			t.Fatalf("cluster count changed between runs")
		}
		for i := range again {
			if again[i].ID != first[i].ID || again[i].TrackCount != first[i].TrackCount {
				t.Fatalf("assignment changed between runs")
			}
			for j := range again[i].Tracks {
				if again[i].Tracks[j].ID != first[i].Tracks[j].ID {
					t.Fatalf("member order changed between runs")
				}
			}
		}
	}
}

func TestGroupOrderDependence(t *testing.T) {
	// chain: a-b within radius, b-c within radius, a-c outside.
	// seeding from a leaves c out; seeding from b takes all three.
	a := trackAt(1, 42.50, 1.50, 1, 40, "")
	b := trackAt(2, 42.65, 1.50, 1, 40, "")
	c := trackAt(3, 42.80, 1.50, 1, 40, "")

	fromA := Group([]track.Track{a, b, c}, 18)
	if len(fromA) != 2 {
		t.Fatalf("expected chain split when seeded from the end, got %d clusters", len(fromA))
	}

	fromB := Group([]track.Track{b, a, c}, 18)
	if len(fromB) != 1 {
		t.Fatalf("expected single cluster when seeded from the middle, got %d", len(fromB))
	}
}

func TestGroupSortsByMemberCount(t *testing.T) {
	tracks := []track.Track{
		trackAt(1, 42.50, 1.50, 1, 40, ""), // singleton seeded first
		trackAt(2, 44.00, 3.00, 1, 40, ""),
		trackAt(3, 44.01, 3.01, 1, 40, ""),
		trackAt(4, 44.02, 3.02, 1, 40, ""),
	}

	clusters := Group(tracks, 20)
	if len(clusters) != 2 {
		t.Fatalf("expected two clusters, got %d", len(clusters))
	}
	if clusters[0].TrackCount < clusters[1].TrackCount {
		t.Fatalf("clusters not sorted by member count")
	}
	// ids reflect creation order, not the sorted position
	if clusters[0].ID != "cluster_2" || clusters[1].ID != "cluster_1" {
		t.Fatalf("unexpected ids: %s, %s", clusters[0].ID, clusters[1].ID)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if clusters := Group(nil, 20); len(clusters) != 0 {
		t.Fatalf("expected no clusters for empty input")
	}
}
