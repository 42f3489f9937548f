package domain

// FantasyTeamSize is the fixed roster size for grand tour fantasy teams.
const FantasyTeamSize = 8

type FantasyTeam struct {
	ID          int      `json:"id"`
	UserID      int      `json:"userId"`
	RaceID      int      `json:"raceId"`
	TotalPoints *int     `json:"totalPoints"`
	Riders      []*Rider `json:"riders"`
}

func (t *FantasyTeam) RiderIDs() []int {
	ids := make([]int, len(t.Riders))
	for i, r := range t.Riders {
		ids[i] = r.ID
	}
	return ids
}

// TeamBuilder is the roster selection state used on grand tour bet pages.
type TeamBuilder struct {
	Roster    []int `json:"riderIds"`
	Confirmed bool  `json:"confirmed"`
}

// BuilderFromTeam pre-fills a builder from an already submitted fantasy
// team and locks it.
func BuilderFromTeam(t *FantasyTeam) TeamBuilder {
	return TeamBuilder{
		Roster:    t.RiderIDs(),
		Confirmed: true,
	}
}

func (b *TeamBuilder) Has(riderID int) bool {
	for _, id := range b.Roster {
		if id == riderID {
			return true
		}
	}
	return false
}

// Toggle applies one rider click: a selected rider is removed, a new rider
// is added while there is room, and a click on a full roster is ignored.
func (b *TeamBuilder) Toggle(riderID int) error {
	if b.Confirmed {
		return ErrSelectionLocked
	}

	for i, id := range b.Roster {
		if id == riderID {
			b.Roster = append(b.Roster[:i], b.Roster[i+1:]...)
			return nil
		}
	}
	if len(b.Roster) < FantasyTeamSize {
		b.Roster = append(b.Roster, riderID)
	}
	return nil
}

// Ready reports whether the roster can be submitted: exactly 8 riders.
func (b *TeamBuilder) Ready() bool {
	return len(b.Roster) == FantasyTeamSize
}

func (b *TeamBuilder) Confirm() error {
	if !b.Ready() {
		return ErrIncompleteSelection
	}
	b.Confirmed = true
	return nil
}

func (b *TeamBuilder) Reopen() {
	b.Confirmed = false
}

func (b *TeamBuilder) Reset() {
	b.Roster = nil
	b.Confirmed = false
}
