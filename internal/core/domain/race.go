package domain

import (
	"time"
)

type RaceType string

const (
	GrandTour    RaceType = "GRAND_TOUR"
	Monument     RaceType = "MONUMENT"
	StageRace    RaceType = "STAGE_RACE"
	Classic      RaceType = "CLASSIC"
	Championship RaceType = "CHAMPIONSHIP"
)

// StageProfile is the short PCS profile code for a stage.
type StageProfile string

const (
	ProfileFlat           StageProfile = "p1"
	ProfileHilly          StageProfile = "p2"
	ProfileMediumMountain StageProfile = "p3"
	ProfileMountain       StageProfile = "p4"
	ProfileHighMountain   StageProfile = "p5"
)

type Stage struct {
	ID       int          `json:"id"`
	RaceID   int          `json:"raceId"`
	Number   int          `json:"number"`
	Name     string       `json:"name"`
	Profile  StageProfile `json:"profile"`
	Date     *time.Time   `json:"date,omitempty"`
}

type Race struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Type          RaceType  `json:"type"`
	Multiplicator float64   `json:"multiplicator"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Nationality   string    `json:"nationality"`
	Year          int       `json:"year"`
	Stages        []*Stage  `json:"stages,omitempty"`
}

// Started reports whether betting is closed: the race is live or finished.
func (r *Race) Started(now time.Time) bool {
	return !now.Before(r.StartDate)
}

// UsesFantasyTeam reports whether the race is played with an 8-rider
// fantasy team instead of a winner/bonus prediction.
func (r *Race) UsesFantasyTeam() bool {
	return r.Type == GrandTour
}
