package domain

import (
	"errors"
)

var (
	ErrSelectionLocked     = errors.New("selection is locked")
	ErrBettingClosed       = errors.New("race has already started")
	ErrIncompleteSelection = errors.New("selection is incomplete")
)

type Prediction struct {
	ID              int    `json:"id"`
	UserID          int    `json:"userId"`
	RaceID          int    `json:"raceId"`
	FavoriteRiderID int    `json:"favoriteRiderId"`
	BonusRiderID    int    `json:"bonusRiderId"`
	PointsEarned    *int   `json:"pointsEarned"`
	FavoriteRider   *Rider `json:"favoriteRider,omitempty"`
	BonusRider      *Rider `json:"bonusRider,omitempty"`
}

// PredictionPicker is the two-slot winner/bonus selection state used on
// classic race bet pages. The zero rider id means an empty slot.
type PredictionPicker struct {
	Winner    int  `json:"winnerId"`
	Bonus     int  `json:"bonusId"`
	Confirmed bool `json:"confirmed"`
}

// PickerFromPrediction pre-fills a picker from an already submitted
// prediction and locks it.
func PickerFromPrediction(p *Prediction) PredictionPicker {
	return PredictionPicker{
		Winner:    p.FavoriteRiderID,
		Bonus:     p.BonusRiderID,
		Confirmed: true,
	}
}

// Toggle applies one rider click. Clicking the current winner clears the
// whole selection (a bonus without a winner is meaningless), clicking the
// current bonus clears only the bonus slot. This asymmetry is the product
// behavior, do not "fix" it.
func (p *PredictionPicker) Toggle(riderID int) error {
	if p.Confirmed {
		return ErrSelectionLocked
	}

	switch {
	case riderID == p.Winner:
		p.Winner = 0
		p.Bonus = 0
	case riderID == p.Bonus:
		p.Bonus = 0
	case p.Winner == 0:
		p.Winner = riderID
	default:
		p.Bonus = riderID
	}
	return nil
}

// Ready reports whether the picker can be submitted: two distinct riders.
func (p *PredictionPicker) Ready() bool {
	return p.Winner != 0 && p.Bonus != 0 && p.Winner != p.Bonus
}

func (p *PredictionPicker) Confirm() error {
	if !p.Ready() {
		return ErrIncompleteSelection
	}
	p.Confirmed = true
	return nil
}

// Reopen unlocks a confirmed picker so the bet can be edited. The caller
// must check that the race has not started.
func (p *PredictionPicker) Reopen() {
	p.Confirmed = false
}

func (p *PredictionPicker) Reset() {
	p.Winner = 0
	p.Bonus = 0
	p.Confirmed = false
}
