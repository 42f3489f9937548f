package domain

import (
	"errors"
	"strconv"
	"strings"
)

var ErrBadInviteString = errors.New("invalid invite string")

type LeagueRole string

const (
	RoleAdmin  LeagueRole = "admin"
	RoleMember LeagueRole = "member"
)

type League struct {
	ID          int             `json:"id"`
	Name        string          `json:"name" validate:"required,min=3,max=50"`
	Description string          `json:"description,omitempty" validate:"max=255"`
	InviteCode  string          `json:"inviteCode,omitempty"`
	CreatorID   int             `json:"creatorId"`
	Members     []*LeagueMember `json:"members,omitempty"`
}

type LeagueMember struct {
	ID     int        `json:"id"`
	Role   LeagueRole `json:"role"`
	User   *User      `json:"user,omitempty"`
	Points int        `json:"points"`
}

// LeagueMembership is one entry of the user's league directory, with the
// league preloaded.
type LeagueMembership struct {
	ID     int        `json:"id"`
	Role   LeagueRole `json:"role"`
	League *League    `json:"league"`
}

// ParseInviteString splits the composite "leagueId:code" invite string
// that players share out-of-band.
func ParseInviteString(s string) (int, string, error) {
	idPart, code, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || code == "" {
		return 0, "", ErrBadInviteString
	}
	leagueID, err := strconv.Atoi(idPart)
	if err != nil || leagueID <= 0 {
		return 0, "", ErrBadInviteString
	}
	return leagueID, code, nil
}
