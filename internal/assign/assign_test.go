package assign

import (
	"testing"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

func TestAddPayer(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		add       string
		wantNames []string
	}{
		{"first payer", nil, "Alice", []string{"Alice"}},
		{"appends in order", []string{"Alice"}, "Bob", []string{"Alice", "Bob"}},
		{"empty name is a no-op", []string{"Alice"}, "", []string{"Alice"}},
		{"exact duplicate is a no-op", []string{"Alice"}, "Alice", []string{"Alice"}},
		{"case-insensitive duplicate is a no-op", []string{"Alice"}, "ALICE", []string{"Alice"}},
		{"korean name", []string{"현이"}, "민수", []string{"현이", "민수"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payers []models.Payer
			for _, name := range tt.existing {
				payers = AddPayer(payers, name)
			}

			got := AddPayer(payers, tt.add)

			if len(got) != len(tt.wantNames) {
				t.Fatalf("got %d payers, want %d", len(got), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Errorf("payer %d name = %q, want %q", i, got[i].Name, want)
				}
				if got[i].ID == "" {
					t.Errorf("payer %d has empty ID", i)
				}
			}
		})
	}
}

func TestAddPayerDoesNotMutateInput(t *testing.T) {
	payers := AddPayer(nil, "Alice")
	before := payers[0]

	_ = AddPayer(payers, "Bob")

	if payers[0] != before || len(payers) != 1 {
		t.Error("AddPayer mutated its input slice")
	}
}

func TestRemovePayerCascades(t *testing.T) {
	payers := AddPayer(AddPayer(AddPayer(nil, "Alice"), "Bob"), "Charlie")
	alice, bob := payers[0].ID, payers[1].ID

	items := []models.Item{
		{ID: "i1", Name: "Pizza", Price: 20000, Payers: []string{alice, bob}},
		{ID: "i2", Name: "Beer", Price: 5000, Payers: []string{alice}},
		{ID: "i3", Name: "Pajeon", Price: 15000, IsShared: true},
	}

	gotItems, gotPayers := RemovePayer(items, payers, alice)

	if len(gotPayers) != 2 {
		t.Fatalf("got %d payers, want 2", len(gotPayers))
	}
	for _, p := range gotPayers {
		if p.ID == alice {
			t.Error("removed payer still in payer list")
		}
	}
	for _, item := range gotItems {
		for _, id := range item.Payers {
			if id == alice {
				t.Errorf("item %s still assigned to removed payer", item.ID)
			}
		}
	}

	// i2's only assignee was removed: it stays unassigned, not shared.
	if gotItems[1].IsShared {
		t.Error("emptied item was auto-converted to shared")
	}
	if len(gotItems[1].Payers) != 0 {
		t.Errorf("emptied item has %d payers, want 0", len(gotItems[1].Payers))
	}
	// Shared items are untouched by payer removal.
	if !gotItems[2].IsShared {
		t.Error("shared item lost its flag during payer removal")
	}
}

func TestTogglePayer(t *testing.T) {
	tests := []struct {
		name         string
		item         models.Item
		payerID      string
		wantPayers   int
		wantAssigned bool
	}{
		{
			name:         "assigns when absent",
			item:         models.Item{ID: "i1"},
			payerID:      "p1",
			wantPayers:   1,
			wantAssigned: true,
		},
		{
			name:         "unassigns when present",
			item:         models.Item{ID: "i1", Payers: []string{"p1", "p2"}},
			payerID:      "p1",
			wantPayers:   1,
			wantAssigned: false,
		},
		{
			name:         "toggling off the last payer leaves it unassigned",
			item:         models.Item{ID: "i1", Payers: []string{"p1"}},
			payerID:      "p1",
			wantPayers:   0,
			wantAssigned: false,
		},
		{
			name:         "assigning a shared item un-shares it",
			item:         models.Item{ID: "i1", IsShared: true},
			payerID:      "p1",
			wantPayers:   1,
			wantAssigned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TogglePayer([]models.Item{tt.item}, "i1", tt.payerID)

			if len(got[0].Payers) != tt.wantPayers {
				t.Errorf("got %d payers, want %d", len(got[0].Payers), tt.wantPayers)
			}
			if got[0].AssignedTo(tt.payerID) != tt.wantAssigned {
				t.Errorf("AssignedTo(%s) = %v, want %v", tt.payerID, got[0].AssignedTo(tt.payerID), tt.wantAssigned)
			}
			// Any manual assignment action forces individual mode.
			if got[0].IsShared {
				t.Error("item is still shared after TogglePayer")
			}
		})
	}
}

func TestTogglePayerLeavesOtherItemsAlone(t *testing.T) {
	items := []models.Item{
		{ID: "i1", IsShared: true},
		{ID: "i2", Payers: []string{"p1"}},
	}

	got := TogglePayer(items, "i2", "p2")

	if !got[0].IsShared {
		t.Error("unrelated item was modified")
	}
	if len(got[1].Payers) != 2 {
		t.Errorf("target item has %d payers, want 2", len(got[1].Payers))
	}
}

func TestToggleShared(t *testing.T) {
	tests := []struct {
		name       string
		item       models.Item
		wantShared bool
	}{
		{"unassigned becomes shared", models.Item{ID: "i1"}, true},
		{"individual becomes shared and drops assignees", models.Item{ID: "i1", Payers: []string{"p1", "p2"}}, true},
		{"shared becomes unassigned with a blank set", models.Item{ID: "i1", IsShared: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleShared([]models.Item{tt.item}, "i1")

			if got[0].IsShared != tt.wantShared {
				t.Errorf("IsShared = %v, want %v", got[0].IsShared, tt.wantShared)
			}
			// Payers reset in both directions; no history is retained.
			if len(got[0].Payers) != 0 {
				t.Errorf("got %d payers after toggle, want 0", len(got[0].Payers))
			}
		})
	}
}

// TestInvariantHeldAcrossSequences drives the state machine through a mixed
// sequence of operations and checks that no item ever ends up both shared
// and individually assigned.
func TestInvariantHeldAcrossSequences(t *testing.T) {
	payers := AddPayer(AddPayer(nil, "Alice"), "Bob")
	alice, bob := payers[0].ID, payers[1].ID

	items := []models.Item{
		{ID: "i1", Name: "Pizza", Price: 20000},
		{ID: "i2", Name: "Jjigae", Price: 12000, IsShared: true},
	}

	checkValid := func(step string) {
		t.Helper()
		for _, item := range items {
			if !item.Valid() {
				t.Fatalf("after %s: item %s is shared with %d assignees", step, item.ID, len(item.Payers))
			}
		}
	}

	items = TogglePayer(items, "i1", alice)
	checkValid("assign i1 to alice")

	items = TogglePayer(items, "i2", bob)
	checkValid("assign shared i2 to bob")

	items = ToggleShared(items, "i1")
	checkValid("share i1")

	items = ToggleShared(items, "i1")
	checkValid("unshare i1")

	items, payers = RemovePayer(items, payers, bob)
	checkValid("remove bob")

	items = TogglePayer(items, "i2", alice)
	checkValid("assign i2 to alice")

	if len(payers) != 1 {
		t.Fatalf("got %d payers, want 1", len(payers))
	}
}
