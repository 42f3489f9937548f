package domain

import (
	"errors"
	"testing"
)

func TestPickerToggle(t *testing.T) {
	cases := []struct {
		name    string
		setup   PredictionPicker
		riderID int
		want    PredictionPicker
		wantErr error
	}{
		{
			name:    "first click sets the winner",
			setup:   PredictionPicker{},
			riderID: 3,
			want:    PredictionPicker{Winner: 3},
		},
		{
			name:    "second click on another rider sets the bonus",
			setup:   PredictionPicker{Winner: 3},
			riderID: 7,
			want:    PredictionPicker{Winner: 3, Bonus: 7},
		},
		{
			name:    "clicking the winner clears the whole selection",
			setup:   PredictionPicker{Winner: 3, Bonus: 7},
			riderID: 3,
			want:    PredictionPicker{},
		},
		{
			name:    "clicking the bonus clears only the bonus",
			setup:   PredictionPicker{Winner: 3, Bonus: 7},
			riderID: 7,
			want:    PredictionPicker{Winner: 3},
		},
		{
			name:    "third rider replaces the bonus",
			setup:   PredictionPicker{Winner: 3, Bonus: 7},
			riderID: 9,
			want:    PredictionPicker{Winner: 3, Bonus: 9},
		},
		{
			name:    "confirmed picker rejects every click",
			setup:   PredictionPicker{Winner: 3, Bonus: 7, Confirmed: true},
			riderID: 9,
			want:    PredictionPicker{Winner: 3, Bonus: 7, Confirmed: true},
			wantErr: ErrSelectionLocked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			picker := tc.setup
			err := picker.Toggle(tc.riderID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Toggle: got err %v, want %v", err, tc.wantErr)
			}
			if picker != tc.want {
				t.Fatalf("Toggle: got %+v, want %+v", picker, tc.want)
			}
		})
	}
}

func TestPickerToggleIsInvolutive(t *testing.T) {
	// Clicking a rider twice from empty always returns to empty.
	picker := PredictionPicker{}
	if err := picker.Toggle(5); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := picker.Toggle(5); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if picker != (PredictionPicker{}) {
		t.Fatalf("double toggle: got %+v, want empty", picker)
	}
}

func TestPickerReady(t *testing.T) {
	cases := []struct {
		name   string
		picker PredictionPicker
		want   bool
	}{
		{"empty", PredictionPicker{}, false},
		{"winner only", PredictionPicker{Winner: 1}, false},
		{"bonus only", PredictionPicker{Bonus: 2}, false},
		{"distinct pair", PredictionPicker{Winner: 1, Bonus: 2}, true},
		{"same rider twice", PredictionPicker{Winner: 1, Bonus: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.picker.Ready(); got != tc.want {
				t.Fatalf("Ready: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPickerConfirmRequiresCompleteSelection(t *testing.T) {
	picker := PredictionPicker{Winner: 1}
	if err := picker.Confirm(); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("Confirm: got %v, want ErrIncompleteSelection", err)
	}

	picker.Bonus = 2
	if err := picker.Confirm(); err != nil {
		t.Fatalf("Confirm: unexpected err %v", err)
	}
	if !picker.Confirmed {
		t.Fatal("Confirm: picker not confirmed")
	}

	picker.Reopen()
	if picker.Confirmed {
		t.Fatal("Reopen: picker still confirmed")
	}
	if err := picker.Toggle(2); err != nil {
		t.Fatalf("Toggle after Reopen: unexpected err %v", err)
	}
}

func TestPickerFromPredictionIsLocked(t *testing.T) {
	picker := PickerFromPrediction(&Prediction{FavoriteRiderID: 4, BonusRiderID: 8})
	if picker.Winner != 4 || picker.Bonus != 8 {
		t.Fatalf("got %+v", picker)
	}
	if !picker.Confirmed {
		t.Fatal("pre-filled picker must start locked")
	}
}
