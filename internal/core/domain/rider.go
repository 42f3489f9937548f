package domain

import (
	"strings"
)

// RiderExtras carries the race-scoped pivot columns returned when a rider
// is part of a startlist.
type RiderExtras struct {
	Bib      int    `json:"pivot_bib,omitempty"`
	TeamName string `json:"pivot_team_name,omitempty"`
}

type Rider struct {
	ID          int          `json:"id"`
	FullName    string       `json:"fullName"`
	Team        string       `json:"team"`
	CountryCode string       `json:"countryCode,omitempty"`
	Extras      *RiderExtras `json:"$extras,omitempty"`
}

// DisplayTeam prefers the rider's current team and falls back to the team
// name recorded on the startlist pivot.
func (r *Rider) DisplayTeam() string {
	if r.Team != "" {
		return r.Team
	}
	if r.Extras != nil {
		return r.Extras.TeamName
	}
	return ""
}

type Startlist struct {
	ID     int      `json:"id"`
	RaceID int      `json:"raceId"`
	Riders []*Rider `json:"riders"`
}

func (s *Startlist) Contains(riderID int) bool {
	for _, r := range s.Riders {
		if r.ID == riderID {
			return true
		}
	}
	return false
}

func (s *Startlist) Rider(riderID int) *Rider {
	for _, r := range s.Riders {
		if r.ID == riderID {
			return r
		}
	}
	return nil
}

// Filter returns the riders whose name or team contains the search term,
// case-insensitively. It never mutates the startlist.
func (s *Startlist) Filter(term string) []*Rider {
	if term == "" {
		return s.Riders
	}
	term = strings.ToLower(term)
	filtered := make([]*Rider, 0, len(s.Riders))
	for _, r := range s.Riders {
		if strings.Contains(strings.ToLower(r.FullName), term) ||
			strings.Contains(strings.ToLower(r.DisplayTeam()), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
