package game

import (
	"context"
	"sort"
	"time"

	"financequest/src/apperr"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

type Period string

const (
	PeriodAllTime Period = "all_time"
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"

	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

type LeaderboardEntry struct {
	Rank             int             `json:"rank"`
	GameID           string          `json:"gameId"`
	UserID           string          `json:"userId"`
	UserName         string          `json:"userName"`
	Score            int64           `json:"score"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	ReturnPercentage decimal.Decimal `json:"returnPercentage"`
	CurrentDate      string          `json:"currentDate"`
	createdAt        time.Time
}

// Leaderboard ranks active games by score. Games are read from the most recently updated
// 2*limit, valued at their own current date, and ordered by score, then total value,
// then the earlier created game, then game id. A game that fails to value is left out.
func (s *Service) Leaderboard(ctx context.Context, period Period, limit int) ([]LeaderboardEntry, error) {
	if period == "" {
		period = PeriodAllTime
	}
	if limit == 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit < 1 || limit > MaxLeaderboardLimit {
		return nil, apperr.Validation("limit must be between 1 and %d", MaxLeaderboardLimit)
	}

	var since *time.Time
	now := s.now()
	switch period {
	case PeriodAllTime:
	case PeriodMonthly:
		t := now.AddDate(0, -1, 0)
		since = &t
	case PeriodWeekly:
		t := now.AddDate(0, 0, -7)
		since = &t
	default:
		return nil, apperr.Validation("invalid period %q", period)
	}

	games, err := s.games.ListActive(ctx, since, 2*limit)
	if err != nil {
		return nil, err
	}

	log := logger.WithFields(map[string]interface{}{
		"component": "Leaderboard",
		"period":    period,
	})

	entries := make([]LeaderboardEntry, 0, len(games))
	userIDs := make([]string, 0, len(games))
	for i := range games {
		g := &games[i]
		holdings, err := s.holdings.ListByGame(ctx, g.ID)
		if err != nil {
			log.WithError(err).WithField("gameId", g.ID).Warn("leaderboard: holdings not loaded")
			continue
		}
		snap, err := s.engine.Value(ctx, g, holdings, g.CurrentDate)
		if err != nil {
			log.WithError(err).WithField("gameId", g.ID).Warn("leaderboard: valuation failed")
			continue
		}
		entries = append(entries, LeaderboardEntry{
			GameID:           g.ID,
			UserID:           g.UserID,
			Score:            snap.Score,
			TotalValue:       snap.TotalValue,
			ReturnPercentage: snap.ReturnPercentage,
			CurrentDate:      g.CurrentDate.String(),
			createdAt:        g.CreatedAt,
		})
		userIDs = append(userIDs, g.UserID)
	}

	SortEntries(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}

	names, err := s.users.NamesByIDs(ctx, userIDs)
	if err != nil {
		log.WithError(err).Warn("leaderboard: user names not loaded")
		names = map[string]string{}
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].UserName = names[entries[i].UserID]
		if entries[i].UserName == "" {
			entries[i].UserName = "Anonymous"
		}
	}
	return entries, nil
}

// SortEntries orders entries best first. The order is total for distinct game ids.
func SortEntries(entries []LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if c := a.TotalValue.Cmp(b.TotalValue); c != 0 {
			return c > 0
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.GameID < b.GameID
	})
}
