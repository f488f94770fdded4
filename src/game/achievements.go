package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"financequest/src/assets"
	"financequest/src/model"
	"financequest/src/portfolio"
	"financequest/src/repository"
	"financequest/src/stream"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// Criteria is the closed set of unlock conditions. Each catalog row decodes into exactly
// one of the types below.
type Criteria interface {
	criteriaType() string
}

type FirstTransaction struct{}

type AssetCount struct {
	MinCount int `json:"min_count"`
}

type PortfolioValue struct {
	MinValue decimal.Decimal `json:"min_value"`
}

type ReturnPercentage struct {
	MinReturn decimal.Decimal `json:"min_return"`
}

type SpecificTrade struct {
	AssetType assets.AssetType `json:"asset_type"`
	MinCount  int              `json:"min_count"`
}

func (FirstTransaction) criteriaType() string { return "first_transaction" }
func (AssetCount) criteriaType() string       { return "asset_count" }
func (PortfolioValue) criteriaType() string   { return "portfolio_value" }
func (ReturnPercentage) criteriaType() string { return "return_percentage" }
func (SpecificTrade) criteriaType() string    { return "specific_trade" }

// DecodeCriteria turns a catalog row's criteria into its typed form.
func DecodeCriteria(typ string, raw []byte) (Criteria, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch typ {
	case "first_transaction":
		return FirstTransaction{}, nil
	case "asset_count":
		var v AssetCount
		if err := decodeInto(typ, raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "portfolio_value":
		var v PortfolioValue
		if err := decodeInto(typ, raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "return_percentage":
		var v ReturnPercentage
		if err := decodeInto(typ, raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "specific_trade":
		var v SpecificTrade
		if err := decodeInto(typ, raw, &v); err != nil {
			return nil, err
		}
		if !v.AssetType.Valid() {
			return nil, fmt.Errorf("decode %s criteria: unknown asset type %q", typ, v.AssetType)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown criteria type %q", typ)
}

func decodeInto(typ string, raw []byte, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s criteria: %w", typ, err)
	}
	return nil
}

// facts is what criteria are evaluated against. The snapshot is only computed when a
// value based criterion asks for it.
type facts struct {
	transactions int64
	longSymbols  map[string]struct{}
	snapshot     func() (*portfolio.Snapshot, error)
}

func (f *facts) satisfied(c Criteria) (bool, error) {
	switch v := c.(type) {
	case FirstTransaction:
		return f.transactions >= 1, nil
	case AssetCount:
		return len(f.longSymbols) >= v.MinCount, nil
	case SpecificTrade:
		ofType := assets.SymbolsOfType(v.AssetType)
		n := 0
		for s := range f.longSymbols {
			if _, ok := ofType[s]; ok {
				n++
			}
		}
		return n >= v.MinCount, nil
	case PortfolioValue:
		snap, err := f.snapshot()
		if err != nil {
			return false, err
		}
		return snap.TotalValue.GreaterThanOrEqual(v.MinValue), nil
	case ReturnPercentage:
		snap, err := f.snapshot()
		if err != nil {
			return false, err
		}
		return snap.ReturnPercentage.GreaterThanOrEqual(v.MinReturn), nil
	}
	return false, fmt.Errorf("unhandled criteria %T", c)
}

// Achievements evaluates and records unlocks.
type Achievements struct {
	repo      *repository.AchievementRepository
	games     *repository.GameRepository
	holdings  *repository.HoldingRepository
	txns      *repository.TransactionRepository
	engine    *portfolio.Engine
	publisher stream.Publisher
	now       func() time.Time
}

func NewAchievements(
	repo *repository.AchievementRepository,
	games *repository.GameRepository,
	holdings *repository.HoldingRepository,
	txns *repository.TransactionRepository,
	engine *portfolio.Engine,
	publisher stream.Publisher,
) *Achievements {
	if publisher == nil {
		publisher = stream.Nop{}
	}
	return &Achievements{
		repo:      repo,
		games:     games,
		holdings:  holdings,
		txns:      txns,
		engine:    engine,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CheckAndUnlock unlocks every achievement the game now qualifies for and returns the
// newly unlocked ones. Failures are logged and never returned.
func (a *Achievements) CheckAndUnlock(ctx context.Context, gameID string) []model.Achievement {
	log := logger.WithFields(map[string]interface{}{
		"component": "Achievements",
		"gameId":    gameID,
	})

	game, err := a.games.FindByID(ctx, gameID)
	if err != nil {
		log.WithError(err).Warn("achievement check skipped, game not loaded")
		return nil
	}

	pending, err := a.Available(ctx, gameID)
	if err != nil {
		log.WithError(err).Warn("achievement check skipped, catalog not loaded")
		return nil
	}
	if len(pending) == 0 {
		return nil
	}

	f, err := a.collect(ctx, game)
	if err != nil {
		log.WithError(err).Warn("achievement check skipped, facts not loaded")
		return nil
	}

	var unlocked []model.Achievement
	for _, ach := range pending {
		criteria, err := DecodeCriteria(ach.CriteriaType, ach.CriteriaValue)
		if err != nil {
			log.WithError(err).WithField("code", ach.Code).Warn("invalid achievement criteria")
			continue
		}
		ok, err := f.satisfied(criteria)
		if err != nil {
			log.WithError(err).WithField("code", ach.Code).Warn("achievement criteria evaluation failed")
			continue
		}
		if !ok {
			continue
		}

		inserted, err := a.repo.Unlock(ctx, game.UserID, game.ID, ach.ID, a.now())
		if err != nil {
			log.WithError(err).WithField("code", ach.Code).Warn("achievement unlock failed")
			continue
		}
		if !inserted {
			continue
		}

		log.WithFields(map[string]interface{}{"code": ach.Code, "points": ach.Points}).Info("achievement unlocked")
		unlocked = append(unlocked, ach)
		a.publisher.Publish(stream.Event{
			Type:   stream.EventAchievementUnlocked,
			GameID: game.ID,
			Data:   ach,
		})
	}
	return unlocked
}

func (a *Achievements) collect(ctx context.Context, game *model.Game) (*facts, error) {
	count, err := a.txns.CountByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	holdings, err := a.holdings.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	longs := make(map[string]struct{})
	for _, h := range holdings {
		if !h.IsShort {
			longs[h.Symbol] = struct{}{}
		}
	}

	var (
		snap    *portfolio.Snapshot
		snapErr error
		done    bool
	)
	return &facts{
		transactions: count,
		longSymbols:  longs,
		snapshot: func() (*portfolio.Snapshot, error) {
			if !done {
				snap, snapErr = a.engine.Value(ctx, game, holdings, game.CurrentDate)
				done = true
			}
			return snap, snapErr
		},
	}, nil
}

// Unlocked returns the game's unlocks, oldest first.
func (a *Achievements) Unlocked(ctx context.Context, gameID string) ([]model.UserAchievement, error) {
	return a.repo.ListUnlocked(ctx, gameID)
}

// TotalPoints sums the points of the game's unlocked achievements.
func (a *Achievements) TotalPoints(ctx context.Context, gameID string) (int, error) {
	unlocked, err := a.repo.ListUnlocked(ctx, gameID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, u := range unlocked {
		if u.Achievement != nil {
			total += u.Achievement.Points
		}
	}
	return total, nil
}

// Available returns the catalog entries the game has not unlocked yet.
func (a *Achievements) Available(ctx context.Context, gameID string) ([]model.Achievement, error) {
	catalog, err := a.repo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := a.repo.ListUnlocked(ctx, gameID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(unlocked))
	for _, u := range unlocked {
		seen[u.AchievementID] = struct{}{}
	}
	out := make([]model.Achievement, 0, len(catalog))
	for _, ach := range catalog {
		if _, ok := seen[ach.ID]; !ok {
			out = append(out, ach)
		}
	}
	return out, nil
}
