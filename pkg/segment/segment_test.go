package segment

import (
	"testing"

	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/features"
)

func testClients() []*features.ClientFeatures {
	var clients []*features.ClientFeatures
	// Two clearly separated populations: affluent diverse spenders and
	// inactive low-balance clients.
	for i := int64(0); i < 10; i++ {
		clients = append(clients, &features.ClientFeatures{
			ClientCode: i,
			Balance:    5_000_000 + float64(i)*100_000,
			Spend: map[string]float64{
				features.CategoryTravel:      200_000,
				features.CategoryRestaurants: 150_000,
				features.CategoryTaxi:        50_000,
			},
			Transfers: map[string]float64{
				features.TransferSalaryIn: 900_000,
			},
		})
	}
	for i := int64(10); i < 20; i++ {
		clients = append(clients, &features.ClientFeatures{
			ClientCode: i,
			Balance:    50_000 + float64(i)*1000,
		})
	}
	return clients
}

func testConfig() config.SegmentConfig {
	return config.SegmentConfig{Clusters: 2, MaxIterations: 100, Seed: 42}
}

func TestVectors_NormalizedRange(t *testing.T) {
	vectors := Vectors(testClients())
	for i, v := range vectors {
		for _, d := range v.dims() {
			if d < 0 || d > 1 {
				t.Errorf("vector %d has dimension %v outside [0,1]: %+v", i, d, v)
			}
		}
	}
}

func TestVectors_RecencyInvertsBalance(t *testing.T) {
	clients := testClients()
	vectors := Vectors(clients)

	// The largest balance must map to the lowest recency.
	richest, poorest := 9, 10
	if vectors[richest].Recency >= vectors[poorest].Recency {
		t.Errorf("recency(rich) = %v should be below recency(poor) = %v",
			vectors[richest].Recency, vectors[poorest].Recency)
	}
}

func TestCluster_Deterministic(t *testing.T) {
	vectors := Vectors(testClients())
	cfg := testConfig()

	a := Cluster(vectors, cfg)
	b := Cluster(vectors, cfg)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("labels diverged at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestCluster_SeparatesPopulations(t *testing.T) {
	labels := Cluster(Vectors(testClients()), testConfig())

	// Every affluent client shares one label, every inactive client the
	// other.
	for i := 1; i < 10; i++ {
		if labels[i] != labels[0] {
			t.Errorf("affluent client %d labeled %d, want %d", i, labels[i], labels[0])
		}
	}
	for i := 11; i < 20; i++ {
		if labels[i] != labels[10] {
			t.Errorf("inactive client %d labeled %d, want %d", i, labels[i], labels[10])
		}
	}
	if labels[0] == labels[10] {
		t.Error("the two populations should land in different clusters")
	}
}

func TestCluster_TinyPopulation(t *testing.T) {
	vectors := Vectors(testClients()[:2])
	labels := Cluster(vectors, config.SegmentConfig{Clusters: 4, Seed: 42})
	for i, l := range labels {
		if l != 0 {
			t.Errorf("label[%d] = %d, want 0 for population smaller than k", i, l)
		}
	}
}

func TestAssign_WritesClusterLabels(t *testing.T) {
	clients := testClients()
	Assign(clients, testConfig())

	seen := map[int]bool{}
	for _, c := range clients {
		seen[c.Cluster] = true
	}
	if len(seen) != 2 {
		t.Errorf("got %d distinct clusters, want 2", len(seen))
	}
	if clients[0].Cluster != 0 {
		t.Errorf("first client cluster = %d, want 0 after renumbering", clients[0].Cluster)
	}
}
