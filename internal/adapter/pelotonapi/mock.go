package pelotonapi

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
)

// Mock is an in-memory stand-in for the peloton API, used in dev mode and
// in tests instead of duplicating pages against hardcoded fixtures. It
// enforces the same rules the real backend does (one bet per user and
// race, distinct riders, no edits once the race started) so workflows
// behave the same against either adapter.
type Mock struct {
	mu sync.Mutex

	secret []byte
	now    func() time.Time

	users       map[int]*mockUser
	races       map[int]*domain.Race
	startlists  map[int]*domain.Startlist
	leagues     map[int]*domain.League
	memberships map[int][]*domain.LeagueMembership
	predictions map[int]*domain.Prediction
	teams       map[int]*domain.FantasyTeam
	nextID      int
}

type mockUser struct {
	user     *domain.User
	password string
}

func NewMock(secret string) *Mock {
	m := &Mock{
		secret:      []byte(secret),
		now:         time.Now,
		users:       map[int]*mockUser{},
		races:       map[int]*domain.Race{},
		startlists:  map[int]*domain.Startlist{},
		leagues:     map[int]*domain.League{},
		memberships: map[int][]*domain.LeagueMembership{},
		predictions: map[int]*domain.Prediction{},
		teams:       map[int]*domain.FantasyTeam{},
		nextID:      1000,
	}
	m.seed()
	return m
}

func (m *Mock) id() int {
	m.nextID++
	return m.nextID
}

func (m *Mock) seed() {
	season := m.now().Year()
	m.users[1] = &mockUser{
		user:     &domain.User{ID: 1, Email: "julien@example.com", Pseudo: "JuJuLaFlèche"},
		password: "password123",
	}

	nextSpring := time.Date(season+1, time.April, 13, 10, 0, 0, 0, time.UTC)
	m.races[1] = &domain.Race{
		ID: 1, Name: "Paris-Roubaix", Slug: "paris-roubaix", Type: domain.Monument,
		Multiplicator: 1.5, StartDate: nextSpring, EndDate: nextSpring,
		Nationality: "FR", Year: season + 1,
	}

	tourStart := time.Date(season+1, time.July, 4, 11, 0, 0, 0, time.UTC)
	m.races[2] = &domain.Race{
		ID: 2, Name: "Tour de France", Slug: "tour-de-france", Type: domain.GrandTour,
		Multiplicator: 2, StartDate: tourStart, EndDate: tourStart.AddDate(0, 0, 22),
		Nationality: "FR", Year: season + 1,
		Stages: []*domain.Stage{
			{ID: 1, RaceID: 2, Number: 1, Name: "Lille > Lille", Profile: domain.ProfileFlat},
			{ID: 2, RaceID: 2, Number: 2, Name: "Lauwin-Planque > Boulogne-sur-Mer", Profile: domain.ProfileHilly},
		},
	}

	names := []string{
		"Tadej Pogacar", "Jonas Vingegaard", "Mathieu van der Poel",
		"Wout van Aert", "Remco Evenepoel", "Mads Pedersen",
		"Primoz Roglic", "Jasper Philipsen", "Biniam Girmay",
		"Romain Grégoire", "Kévin Vauquelin", "Paul Seixas",
	}
	teams := []string{
		"UAE Team Emirates", "Visma Lease a Bike", "Alpecin-Deceuninck",
		"Visma Lease a Bike", "Soudal Quick-Step", "Lidl-Trek",
		"Red Bull-BORA", "Alpecin-Deceuninck", "Intermarché-Wanty",
		"Groupama-FDJ", "Arkéa-B&B Hotels", "Decathlon AG2R",
	}
	riders := make([]*domain.Rider, len(names))
	for i, name := range names {
		riders[i] = &domain.Rider{
			ID: i + 1, FullName: name, Team: teams[i],
			Extras: &domain.RiderExtras{Bib: i + 1, TeamName: teams[i]},
		}
	}
	m.startlists[1] = &domain.Startlist{ID: 1, RaceID: 1, Riders: riders[:8]}
	m.startlists[2] = &domain.Startlist{ID: 2, RaceID: 2, Riders: riders}

	m.leagues[1] = &domain.League{
		ID: 1, Name: "Les Grimpeurs Fous", Description: "La ligue des copains du dimanche",
		InviteCode: "GRIMPEURS", CreatorID: 1,
		Members: []*domain.LeagueMember{
			{ID: 1, Role: domain.RoleAdmin, User: m.users[1].user},
		},
	}
	m.memberships[1] = []*domain.LeagueMembership{
		{ID: 1, Role: domain.RoleAdmin, League: m.leagues[1]},
	}
}

func (m *Mock) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"email":  user.Email,
		"pseudo": user.Pseudo,
		"jti":    uuid.NewString(),
		"exp":    m.now().Add(7 * 24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Mock) authenticate(token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	entry, ok := m.users[int(sub)]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return entry.user, nil
}

// Auth

func (m *Mock) Login(ctx context.Context, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.users {
		if entry.user.Email == email && entry.password == password {
			return m.issueToken(entry.user)
		}
	}
	return "", domain.ErrUnauthorized
}

func (m *Mock) Register(ctx context.Context, pseudo, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.users {
		if entry.user.Email == email {
			return &domain.ValidationError{Message: "email already taken"}
		}
	}
	id := m.id()
	m.users[id] = &mockUser{
		user:     &domain.User{ID: id, Email: email, Pseudo: pseudo},
		password: password,
	}
	return nil
}

func (m *Mock) Me(ctx context.Context, token string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticate(token)
}

// Leagues

func (m *Mock) UserLeagues(ctx context.Context, token string) ([]*domain.LeagueMembership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	return m.memberships[user.ID], nil
}

func (m *Mock) League(ctx context.Context, token string, leagueID int) (*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	league, ok := m.leagues[leagueID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return league, nil
}

func (m *Mock) LeagueMembers(ctx context.Context, token string, leagueID int) ([]*domain.LeagueMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	league, ok := m.leagues[leagueID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return league.Members, nil
}

func (m *Mock) CreateLeague(ctx context.Context, token, name, description string) (*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	if len(name) < 3 {
		return nil, &domain.ValidationError{Message: "league name is too short"}
	}
	league := &domain.League{
		ID:          m.id(),
		Name:        name,
		Description: description,
		InviteCode:  uuid.NewString()[:8],
		CreatorID:   user.ID,
		Members: []*domain.LeagueMember{
			{ID: m.id(), Role: domain.RoleAdmin, User: user},
		},
	}
	m.leagues[league.ID] = league
	m.memberships[user.ID] = append(m.memberships[user.ID], &domain.LeagueMembership{
		ID: m.id(), Role: domain.RoleAdmin, League: league,
	})
	return league, nil
}

func (m *Mock) JoinLeague(ctx context.Context, token string, leagueID int, inviteCode string) (*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	league, ok := m.leagues[leagueID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if league.InviteCode != inviteCode {
		return nil, &domain.ValidationError{Message: "invalid invite code"}
	}
	for _, member := range league.Members {
		if member.User != nil && member.User.ID == user.ID {
			return nil, &domain.ValidationError{Message: "already a member of this league"}
		}
	}
	league.Members = append(league.Members, &domain.LeagueMember{
		ID: m.id(), Role: domain.RoleMember, User: user,
	})
	m.memberships[user.ID] = append(m.memberships[user.ID], &domain.LeagueMembership{
		ID: m.id(), Role: domain.RoleMember, League: league,
	})
	return league, nil
}

// Races

func (m *Mock) Races(ctx context.Context, token string, year int) ([]*domain.Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	races := make([]*domain.Race, 0, len(m.races))
	for _, race := range m.races {
		if year == 0 || race.Year == year {
			races = append(races, race)
		}
	}
	sort.Slice(races, func(i, j int) bool { return races[i].StartDate.Before(races[j].StartDate) })
	return races, nil
}

func (m *Mock) Race(ctx context.Context, token string, raceID int) (*domain.Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	race, ok := m.races[raceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return race, nil
}

func (m *Mock) ImportRace(ctx context.Context, token, slug string) (*domain.Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	for _, race := range m.races {
		if race.Slug == slug {
			return nil, &domain.ValidationError{Message: "race already imported"}
		}
	}
	race := &domain.Race{
		ID:            m.id(),
		Name:          slug,
		Slug:          slug,
		Type:          domain.Classic,
		Multiplicator: 1,
		StartDate:     m.now().AddDate(0, 1, 0),
		EndDate:       m.now().AddDate(0, 1, 0),
		Year:          m.now().Year(),
	}
	m.races[race.ID] = race
	m.startlists[race.ID] = &domain.Startlist{ID: m.id(), RaceID: race.ID}
	return race, nil
}

func (m *Mock) Startlist(ctx context.Context, token string, raceID int) (*domain.Startlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	startlist, ok := m.startlists[raceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return startlist, nil
}

// Predictions

func (m *Mock) MyPrediction(ctx context.Context, token string, raceID int) (*domain.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	for _, p := range m.predictions {
		if p.UserID == user.ID && p.RaceID == raceID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *Mock) CreatePrediction(ctx context.Context, token string, raceID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	race, ok := m.races[raceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if race.Started(m.now()) {
		return nil, &domain.ValidationError{Message: "betting is closed for this race"}
	}
	for _, p := range m.predictions {
		if p.UserID == user.ID && p.RaceID == raceID {
			return nil, &domain.ValidationError{Message: "prediction already exists for this race"}
		}
	}
	if err := m.checkPredictionRiders(raceID, favoriteRiderID, bonusRiderID); err != nil {
		return nil, err
	}
	startlist := m.startlists[raceID]
	prediction := &domain.Prediction{
		ID:              m.id(),
		UserID:          user.ID,
		RaceID:          raceID,
		FavoriteRiderID: favoriteRiderID,
		BonusRiderID:    bonusRiderID,
		FavoriteRider:   startlist.Rider(favoriteRiderID),
		BonusRider:      startlist.Rider(bonusRiderID),
	}
	m.predictions[prediction.ID] = prediction
	return prediction, nil
}

func (m *Mock) UpdatePrediction(ctx context.Context, token string, predictionID, favoriteRiderID, bonusRiderID int) (*domain.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	prediction, ok := m.predictions[predictionID]
	if !ok || prediction.UserID != user.ID {
		return nil, domain.ErrNotFound
	}
	if m.races[prediction.RaceID].Started(m.now()) {
		return nil, &domain.ValidationError{Message: "betting is closed for this race"}
	}
	if err := m.checkPredictionRiders(prediction.RaceID, favoriteRiderID, bonusRiderID); err != nil {
		return nil, err
	}
	startlist := m.startlists[prediction.RaceID]
	prediction.FavoriteRiderID = favoriteRiderID
	prediction.BonusRiderID = bonusRiderID
	prediction.FavoriteRider = startlist.Rider(favoriteRiderID)
	prediction.BonusRider = startlist.Rider(bonusRiderID)
	return prediction, nil
}

func (m *Mock) checkPredictionRiders(raceID, favoriteRiderID, bonusRiderID int) error {
	if favoriteRiderID == bonusRiderID {
		return &domain.ValidationError{Message: "winner and bonus rider must be different"}
	}
	startlist, ok := m.startlists[raceID]
	if !ok {
		return &domain.ValidationError{Message: "startlist is not available yet"}
	}
	if !startlist.Contains(favoriteRiderID) || !startlist.Contains(bonusRiderID) {
		return &domain.ValidationError{Message: "rider is not on the startlist"}
	}
	return nil
}

func (m *Mock) DeletePrediction(ctx context.Context, token string, predictionID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return err
	}
	prediction, ok := m.predictions[predictionID]
	if !ok || prediction.UserID != user.ID {
		return domain.ErrNotFound
	}
	if m.races[prediction.RaceID].Started(m.now()) {
		return &domain.ValidationError{Message: "betting is closed for this race"}
	}
	delete(m.predictions, predictionID)
	return nil
}

func (m *Mock) RacePredictions(ctx context.Context, token string, raceID, leagueID int) ([]*domain.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	var predictions []*domain.Prediction
	for _, p := range m.predictions {
		if p.RaceID != raceID {
			continue
		}
		if leagueID > 0 && !m.inLeague(p.UserID, leagueID) {
			continue
		}
		predictions = append(predictions, p)
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (m *Mock) ScorePredictions(ctx context.Context, token string, raceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return err
	}
	race, ok := m.races[raceID]
	if !ok {
		return domain.ErrNotFound
	}
	// Real scoring lives upstream; the stub just awards flat points.
	for _, p := range m.predictions {
		if p.RaceID == raceID {
			points := int(50 * race.Multiplicator)
			p.PointsEarned = &points
		}
	}
	return nil
}

func (m *Mock) inLeague(userID, leagueID int) bool {
	league, ok := m.leagues[leagueID]
	if !ok {
		return false
	}
	for _, member := range league.Members {
		if member.User != nil && member.User.ID == userID {
			return true
		}
	}
	return false
}

// Fantasy teams

func (m *Mock) MyFantasyTeam(ctx context.Context, token string, raceID int) (*domain.FantasyTeam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	for _, t := range m.teams {
		if t.UserID == user.ID && t.RaceID == raceID {
			return t, nil
		}
	}
	return nil, nil
}

func (m *Mock) CreateFantasyTeam(ctx context.Context, token string, raceID int, riderIDs []int) (*domain.FantasyTeam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	race, ok := m.races[raceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if race.Started(m.now()) {
		return nil, &domain.ValidationError{Message: "betting is closed for this race"}
	}
	for _, t := range m.teams {
		if t.UserID == user.ID && t.RaceID == raceID {
			return nil, &domain.ValidationError{Message: "fantasy team already exists for this race"}
		}
	}
	riders, err := m.checkRoster(raceID, riderIDs)
	if err != nil {
		return nil, err
	}
	team := &domain.FantasyTeam{
		ID:     m.id(),
		UserID: user.ID,
		RaceID: raceID,
		Riders: riders,
	}
	m.teams[team.ID] = team
	return team, nil
}

func (m *Mock) UpdateFantasyTeam(ctx context.Context, token string, teamID int, riderIDs []int) (*domain.FantasyTeam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return nil, err
	}
	team, ok := m.teams[teamID]
	if !ok || team.UserID != user.ID {
		return nil, domain.ErrNotFound
	}
	if m.races[team.RaceID].Started(m.now()) {
		return nil, &domain.ValidationError{Message: "betting is closed for this race"}
	}
	riders, err := m.checkRoster(team.RaceID, riderIDs)
	if err != nil {
		return nil, err
	}
	team.Riders = riders
	return team, nil
}

func (m *Mock) checkRoster(raceID int, riderIDs []int) ([]*domain.Rider, error) {
	if len(riderIDs) != domain.FantasyTeamSize {
		return nil, &domain.ValidationError{Message: "a fantasy team needs exactly 8 riders"}
	}
	startlist, ok := m.startlists[raceID]
	if !ok {
		return nil, &domain.ValidationError{Message: "startlist is not available yet"}
	}
	seen := map[int]bool{}
	riders := make([]*domain.Rider, 0, len(riderIDs))
	for _, id := range riderIDs {
		if seen[id] {
			return nil, &domain.ValidationError{Message: "duplicate rider in roster"}
		}
		seen[id] = true
		rider := startlist.Rider(id)
		if rider == nil {
			return nil, &domain.ValidationError{Message: "rider is not on the startlist"}
		}
		riders = append(riders, rider)
	}
	return riders, nil
}

func (m *Mock) DeleteFantasyTeam(ctx context.Context, token string, teamID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.authenticate(token)
	if err != nil {
		return err
	}
	team, ok := m.teams[teamID]
	if !ok || team.UserID != user.ID {
		return domain.ErrNotFound
	}
	if m.races[team.RaceID].Started(m.now()) {
		return &domain.ValidationError{Message: "betting is closed for this race"}
	}
	delete(m.teams, teamID)
	return nil
}

func (m *Mock) RaceFantasyTeams(ctx context.Context, token string, raceID, leagueID int) ([]*domain.FantasyTeam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return nil, err
	}
	var teams []*domain.FantasyTeam
	for _, t := range m.teams {
		if t.RaceID != raceID {
			continue
		}
		if leagueID > 0 && !m.inLeague(t.UserID, leagueID) {
			continue
		}
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (m *Mock) ScoreFantasyTeams(ctx context.Context, token string, raceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.authenticate(token); err != nil {
		return err
	}
	race, ok := m.races[raceID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, t := range m.teams {
		if t.RaceID == raceID {
			points := int(100 * race.Multiplicator)
			t.TotalPoints = &points
		}
	}
	return nil
}
