package sim

import (
	"errors"
	"math"
	"testing"
)

func testNodes() []Node {
	return []Node{
		{ID: 0, Name: "cloud", ComputeRate: 44800, UplinkBandwidth: 100, Cloud: true},
		{ID: 1, Name: "fog-1", ComputeRate: 5000, UplinkBandwidth: 1000},
		{ID: 2, Name: "fog-2", ComputeRate: 5000, UplinkBandwidth: 1000},
		{ID: 3, Name: "fog-3", ComputeRate: 5000, UplinkBandwidth: 1000},
	}
}

func TestNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr bool
	}{
		{"valid", Node{ID: 1, ComputeRate: 5000, UplinkBandwidth: 1000}, false},
		{"zero bandwidth", Node{ID: 1, ComputeRate: 5000}, true},
		{"negative bandwidth", Node{ID: 1, ComputeRate: 5000, UplinkBandwidth: -1}, true},
		{"NaN bandwidth", Node{ID: 1, ComputeRate: 5000, UplinkBandwidth: math.NaN()}, true},
		{"infinite compute", Node{ID: 1, ComputeRate: math.Inf(1), UplinkBandwidth: 1000}, true},
		{"zero compute", Node{ID: 1, UplinkBandwidth: 1000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidNodeConfig) {
				t.Errorf("got %v, want ErrInvalidNodeConfig", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEligibleNodes_ExcludesCloudAndInvalid(t *testing.T) {
	// GIVEN a topology with a cloud root and one misconfigured fog node
	nodes := testNodes()
	nodes[2].UplinkBandwidth = 0

	// WHEN filtering
	eligible, err := EligibleNodes(nodes)

	// THEN only the two valid fog nodes remain, in id order
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eligible) != 2 || eligible[0].ID != 1 || eligible[1].ID != 3 {
		t.Errorf("eligible = %+v, want fog-1 and fog-3", eligible)
	}
}

func TestEligibleNodes_SortsByID(t *testing.T) {
	nodes := []Node{
		{ID: 9, ComputeRate: 1, UplinkBandwidth: 1},
		{ID: 4, ComputeRate: 1, UplinkBandwidth: 1},
		{ID: 6, ComputeRate: 1, UplinkBandwidth: 1},
	}
	eligible, err := EligibleNodes(nodes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []NodeID{4, 6, 9} {
		if eligible[i].ID != want {
			t.Errorf("position %d: got %d, want %d", i, eligible[i].ID, want)
		}
	}
}

func TestEligibleNodes_OnlyCloud_ErrNoEligibleNodes(t *testing.T) {
	_, err := EligibleNodes(testNodes()[:1])
	if !errors.Is(err, ErrNoEligibleNodes) {
		t.Errorf("got %v, want ErrNoEligibleNodes", err)
	}
	_, err = EligibleNodes(nil)
	if !errors.Is(err, ErrNoEligibleNodes) {
		t.Errorf("nil topology: got %v, want ErrNoEligibleNodes", err)
	}
}
