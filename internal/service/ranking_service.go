package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"github.com/angple/arena-backend/pkg/cache"
	pkglogger "github.com/angple/arena-backend/pkg/logger"
)

// RankingService defines event standings and global ranking logic
type RankingService interface {
	SaveStandings(ctx context.Context, eventID uint64, req *domain.SaveStandingsRequest) ([]domain.EventTeam, error)
	EventTeams(eventID uint64) ([]domain.EventTeam, error)
	Global(ctx context.Context) ([]domain.Team, error)
}

type rankingService struct {
	events     repository.EventRepository
	eventTeams repository.EventTeamRepository
	teams      repository.TeamRepository
	cache      cache.Service
}

// NewRankingService creates a new RankingService
func NewRankingService(
	events repository.EventRepository,
	eventTeams repository.EventTeamRepository,
	teams repository.TeamRepository,
	cacheService cache.Service,
) RankingService {
	return &rankingService{events: events, eventTeams: eventTeams, teams: teams, cache: cacheService}
}

// AssignPositions stable-sorts teams by points descending and numbers them from 1.
// Teams with equal points keep their input order.
// SaveStandings passes the request rows first, then the event's untouched teams.
func AssignPositions(teams []*domain.EventTeam) []*domain.EventTeam {
	sorted := make([]*domain.EventTeam, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Points > sorted[j].Points })
	for i, t := range sorted {
		t.Position = i + 1
	}
	return sorted
}

// trendFor compares the previous position with the new one. Zero means the team is new.
func trendFor(oldPos, newPos int) domain.Trend {
	switch {
	case oldPos == 0 || oldPos == newPos:
		return domain.TrendStable
	case newPos < oldPos:
		return domain.TrendUp
	default:
		return domain.TrendDown
	}
}

func (s *rankingService) SaveStandings(ctx context.Context, eventID uint64, req *domain.SaveStandingsRequest) ([]domain.EventTeam, error) {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		return nil, notFound(err, common.ErrEventNotFound)
	}

	existing := make(map[uint64]domain.EventTeam, len(event.Teams))
	for _, t := range event.Teams {
		existing[t.ID] = t
	}

	edited := make([]*domain.EventTeam, 0, len(req.Teams))
	seen := make(map[uint64]bool, len(req.Teams))
	oldPositions := make(map[*domain.EventTeam]int, len(event.Teams)+len(req.Teams))
	explicitTrend := make(map[*domain.EventTeam]bool, len(req.Teams))
	for i, in := range req.Teams {
		if err := validateTeamStats(i, in); err != nil {
			return nil, err
		}
		row := &domain.EventTeam{EventID: eventID}
		if in.ID != nil {
			if seen[*in.ID] {
				return nil, common.NewValidationError("teams["+strconv.Itoa(i)+"].id", "is listed more than once")
			}
			seen[*in.ID] = true
			prev, ok := existing[*in.ID]
			if !ok {
				return nil, common.ErrTeamNotFound
			}
			*row = prev
			oldPositions[row] = prev.Position
		}
		row.TeamName = strings.TrimSpace(in.TeamName)
		row.MatchesPlayed = in.MatchesPlayed
		row.Wins = in.Wins
		row.Losses = in.Losses
		row.Points = in.Points
		if in.Trend != "" {
			row.Trend = in.Trend
			explicitTrend[row] = true
		}
		edited = append(edited, row)
	}

	// teams left out of the request keep their stats but are ranked with the rest
	rows := append(make([]*domain.EventTeam, 0, len(edited)+len(event.Teams)), edited...)
	untouched := make(map[*domain.EventTeam]bool, len(event.Teams))
	for _, t := range event.Teams {
		if seen[t.ID] {
			continue
		}
		row := t
		oldPositions[&row] = t.Position
		untouched[&row] = true
		rows = append(rows, &row)
	}

	for _, row := range AssignPositions(rows) {
		old := oldPositions[row]
		if explicitTrend[row] || (untouched[row] && old == row.Position) {
			continue
		}
		row.Trend = trendFor(old, row.Position)
	}
	if err := s.eventTeams.Save(rows); err != nil {
		return nil, err
	}

	if req.ApplyToGlobal {
		if err := s.applyToGlobal(ctx, edited); err != nil {
			return nil, err
		}
	}

	return s.eventTeams.ListByEvent(eventID)
}

// applyToGlobal adds the event rows to the global table and re-ranks it
func (s *rankingService) applyToGlobal(ctx context.Context, rows []*domain.EventTeam) error {
	deltas := make([]domain.EventTeam, len(rows))
	for i, r := range rows {
		deltas[i] = *r
	}
	if err := s.teams.Accumulate(deltas); err != nil {
		return err
	}

	global, err := s.teams.List()
	if err != nil {
		return err
	}
	old := make([]int, len(global))
	for i := range global {
		old[i] = global[i].Position
	}
	idx := make([]int, len(global))
	for i := range idx {
		idx[i] = i
	}
	// equal points rank the older team first
	sort.Slice(idx, func(a, b int) bool {
		ta, tb := global[idx[a]], global[idx[b]]
		if ta.Points != tb.Points {
			return ta.Points > tb.Points
		}
		return ta.ID < tb.ID
	})
	for pos, i := range idx {
		global[i].Position = pos + 1
		global[i].Trend = trendFor(old[i], pos+1)
	}
	if err := s.teams.SavePositions(global); err != nil {
		return err
	}

	bestEffort("invalidate_rankings", func() error {
		return s.cache.Delete(ctx, cache.KeyRankings)
	})
	return nil
}

func (s *rankingService) EventTeams(eventID uint64) ([]domain.EventTeam, error) {
	if _, err := s.events.FindByID(eventID); err != nil {
		return nil, notFound(err, common.ErrEventNotFound)
	}
	return s.eventTeams.ListByEvent(eventID)
}

func (s *rankingService) Global(ctx context.Context) ([]domain.Team, error) {
	var cached []domain.Team
	if err := s.cache.Get(ctx, cache.KeyRankings, &cached); err == nil {
		return cached, nil
	}

	teams, err := s.teams.List()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.KeyRankings, teams, cache.TTLRankings); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("failed to cache rankings")
	}
	return teams, nil
}

func validateTeamStats(i int, in domain.TeamStatsInput) error {
	field := func(name string) string { return "teams[" + strconv.Itoa(i) + "]." + name }
	if strings.TrimSpace(in.TeamName) == "" {
		return common.NewValidationError(field("team_name"), "is required")
	}
	if in.MatchesPlayed < 0 || in.Wins < 0 || in.Losses < 0 || in.Points < 0 {
		return common.NewValidationError(field("stats"), "must not be negative")
	}
	if in.Trend != "" && !in.Trend.Valid() {
		return common.NewValidationError(field("trend"), "must be up, down or stable")
	}
	return nil
}
