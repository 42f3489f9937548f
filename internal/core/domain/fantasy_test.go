package domain

import (
	"errors"
	"testing"
)

func fullRoster() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8}
}

func TestBuilderToggle(t *testing.T) {
	cases := []struct {
		name    string
		setup   TeamBuilder
		riderID int
		want    []int
		wantErr error
	}{
		{
			name:    "click adds a rider",
			setup:   TeamBuilder{},
			riderID: 3,
			want:    []int{3},
		},
		{
			name:    "click on a selected rider removes it",
			setup:   TeamBuilder{Roster: []int{3, 5}},
			riderID: 3,
			want:    []int{5},
		},
		{
			name:    "ninth rider on a full roster is ignored",
			setup:   TeamBuilder{Roster: fullRoster()},
			riderID: 9,
			want:    fullRoster(),
		},
		{
			name:    "rostered rider can still be removed from a full roster",
			setup:   TeamBuilder{Roster: fullRoster()},
			riderID: 8,
			want:    []int{1, 2, 3, 4, 5, 6, 7},
		},
		{
			name:    "confirmed builder rejects every click",
			setup:   TeamBuilder{Roster: fullRoster(), Confirmed: true},
			riderID: 1,
			want:    fullRoster(),
			wantErr: ErrSelectionLocked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			builder := tc.setup
			err := builder.Toggle(tc.riderID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Toggle: got err %v, want %v", err, tc.wantErr)
			}
			if len(builder.Roster) != len(tc.want) {
				t.Fatalf("Toggle: got %v, want %v", builder.Roster, tc.want)
			}
			for i, id := range tc.want {
				if builder.Roster[i] != id {
					t.Fatalf("Toggle: got %v, want %v", builder.Roster, tc.want)
				}
			}
		})
	}
}

func TestBuilderReady(t *testing.T) {
	builder := TeamBuilder{}
	for i := 1; i <= FantasyTeamSize; i++ {
		if builder.Ready() {
			t.Fatalf("Ready with %d riders", len(builder.Roster))
		}
		if err := builder.Toggle(i); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if !builder.Ready() {
		t.Fatal("full roster should be ready")
	}
}

func TestBuilderConfirmAndReopen(t *testing.T) {
	builder := TeamBuilder{Roster: []int{1, 2, 3}}
	if err := builder.Confirm(); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("Confirm: got %v, want ErrIncompleteSelection", err)
	}

	builder.Roster = fullRoster()
	if err := builder.Confirm(); err != nil {
		t.Fatalf("Confirm: unexpected err %v", err)
	}

	builder.Reopen()
	if err := builder.Toggle(1); err != nil {
		t.Fatalf("Toggle after Reopen: unexpected err %v", err)
	}
	if builder.Has(1) {
		t.Fatal("rider 1 should have been removed")
	}
}

func TestBuilderFromTeamIsLocked(t *testing.T) {
	team := &FantasyTeam{Riders: []*Rider{{ID: 1}, {ID: 2}}}
	builder := BuilderFromTeam(team)
	if !builder.Confirmed {
		t.Fatal("pre-filled builder must start locked")
	}
	if !builder.Has(1) || !builder.Has(2) {
		t.Fatalf("roster not carried over: %v", builder.Roster)
	}
}
