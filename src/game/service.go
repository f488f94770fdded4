// Package game runs the game lifecycle: creation, day advance, trading, achievements,
// the leaderboard and retention cleanup.
package game

import (
	"context"
	"time"

	"financequest/src/apperr"
	"financequest/src/ledger"
	"financequest/src/market"
	"financequest/src/metrics"
	"financequest/src/model"
	"financequest/src/portfolio"
	"financequest/src/repository"
	"financequest/src/risk"
	"financequest/src/stream"
	"financequest/src/utils"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prefetcher is the part of market.Prefetcher the game lifecycle triggers.
type Prefetcher interface {
	SmartPrefetch(ctx context.Context, startDate model.Date) market.PrefetchResult
	PrefetchSingleDay(ctx context.Context, date model.Date) int64
}

type Service struct {
	games        *repository.GameRepository
	holdings     *repository.HoldingRepository
	txns         *repository.TransactionRepository
	users        *repository.GormUserRepository
	engine       *portfolio.Engine
	ledger       *ledger.Ledger
	achievements *Achievements
	prefetch     Prefetcher
	lanes        *ledger.Lanes
	publisher    stream.Publisher
	cfg          Config
	today        func() model.Date
	now          func() time.Time
}

// Deps are the collaborators of Service that are not derived from the database handle.
type Deps struct {
	Prices    ledger.PriceLookup
	Cache     portfolio.PriceSource
	Prefetch  Prefetcher
	Publisher stream.Publisher
	// ReadDB serves user name lookups. Defaults to db.
	ReadDB *gorm.DB
}

func NewService(db *gorm.DB, deps Deps, cfg Config) *Service {
	if deps.Publisher == nil {
		deps.Publisher = stream.Nop{}
	}
	if deps.ReadDB == nil {
		deps.ReadDB = db
	}
	if cfg.InitialBalance.IsZero() {
		cfg.InitialBalance = decimal.NewFromInt(10000)
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 90
	}
	if cfg.MaxAdvanceDays <= 0 {
		cfg.MaxAdvanceDays = 30
	}

	games := repository.NewGameRepositoryWithDB(db)
	holdings := repository.NewHoldingRepositoryWithDB(db)
	txns := repository.NewTransactionRepositoryWithDB(db)
	engine := portfolio.NewEngine(games, holdings, deps.Cache)
	lanes := ledger.NewLanes()

	return &Service{
		games:        games,
		holdings:     holdings,
		txns:         txns,
		users:        repository.NewUserRepositoryWithDB(deps.ReadDB),
		engine:       engine,
		ledger:       ledger.NewLedger(db, deps.Prices, lanes, deps.Publisher),
		achievements: NewAchievements(repository.NewAchievementRepositoryWithDB(db), games, holdings, txns, engine, deps.Publisher),
		prefetch:     deps.Prefetch,
		lanes:        lanes,
		publisher:    deps.Publisher,
		cfg:          cfg,
		today:        utils.Today,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Engine() *portfolio.Engine { return s.engine }

func (s *Service) Achievements() *Achievements { return s.achievements }

// ----- creation -----

type SettingsInput struct {
	TransactionFees *decimal.Decimal `json:"transactionFees"`
	AllowShorting   *bool            `json:"allowShorting"`
	AllowLeverage   *bool            `json:"allowLeverage"`
}

type CreateGameRequest struct {
	UserID    string         `json:"-"`
	StartDate string         `json:"startDate"`
	Settings  *SettingsInput `json:"settings"`
}

type CreateGameResult struct {
	Game     *model.Game           `json:"game"`
	Prefetch market.PrefetchResult `json:"prefetch"`
}

// CreateGame validates the request, inserts the game and warms the cache around its
// start date. A failed prefetch never undoes the creation.
func (s *Service) CreateGame(ctx context.Context, req CreateGameRequest) (*CreateGameResult, error) {
	active, err := s.games.CountActiveByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	start, res := risk.ValidateGameCreation(req.StartDate, s.today(), active)
	if !res.Valid {
		return nil, res.Err("")
	}

	settings := mergeSettings(req.Settings)
	if res := risk.ValidateSettings(settings); !res.Valid {
		return nil, res.Err("")
	}

	game := &model.Game{
		UserID:         req.UserID,
		StartDate:      start,
		CurrentDate:    start,
		InitialBalance: s.cfg.InitialBalance,
		CurrentBalance: s.cfg.InitialBalance,
		Status:         model.GameStatusActive,
		Settings:       datatypes.NewJSONType(settings),
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}

	log := logger.WithFields(map[string]interface{}{
		"component": "GameService",
		"gameId":    game.ID,
		"userId":    game.UserID,
		"startDate": start.String(),
	})
	log.Info("game created")

	out := &CreateGameResult{Game: game}
	if s.prefetch != nil {
		out.Prefetch = s.prefetch.SmartPrefetch(ctx, start)
		if !out.Prefetch.Success {
			log.WithField("error", out.Prefetch.Error).Warn("initial prefetch failed, game kept")
		}
	}
	return out, nil
}

func mergeSettings(in *SettingsInput) model.GameSettings {
	s := model.DefaultGameSettings()
	if in == nil {
		return s
	}
	if in.TransactionFees != nil {
		s.TransactionFees = *in.TransactionFees
	}
	if in.AllowShorting != nil {
		s.AllowShorting = *in.AllowShorting
	}
	if in.AllowLeverage != nil {
		s.AllowLeverage = *in.AllowLeverage
	}
	return s
}

// ----- reads -----

type GameView struct {
	Game     *model.Game              `json:"game"`
	Snapshot *portfolio.Snapshot      `json:"portfolio"`
	Holdings []portfolio.HoldingValue `json:"holdings"`
	Points   int                      `json:"achievementPoints"`
	Unlocked []model.UserAchievement  `json:"achievements"`
}

// GetGame returns the owned game valued at its current date.
func (s *Service) GetGame(ctx context.Context, gameID, userID string) (*GameView, error) {
	game, err := s.games.FindForUser(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	snap, err := s.engine.CalculatePortfolio(ctx, game.ID, game.CurrentDate)
	if err != nil {
		return nil, err
	}
	values, err := s.engine.CalculateHoldingsValues(ctx, game.ID, game.CurrentDate)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.achievements.Unlocked(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	points := 0
	for _, u := range unlocked {
		if u.Achievement != nil {
			points += u.Achievement.Points
		}
	}
	return &GameView{Game: game, Snapshot: snap, Holdings: values, Points: points, Unlocked: unlocked}, nil
}

type GameSummary struct {
	Game     model.Game          `json:"game"`
	Snapshot *portfolio.Snapshot `json:"portfolio,omitempty"`
}

// ListGames returns the user's games with a snapshot each. A game that fails to value is
// listed without one.
func (s *Service) ListGames(ctx context.Context, userID string, opts repository.GameListOptions) ([]GameSummary, int64, error) {
	games, total, err := s.games.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}
	out := make([]GameSummary, 0, len(games))
	for i := range games {
		g := &games[i]
		holdings, err := s.holdings.ListByGame(ctx, g.ID)
		var snap *portfolio.Snapshot
		if err == nil {
			snap, err = s.engine.Value(ctx, g, holdings, g.CurrentDate)
		}
		if err != nil {
			logger.WithError(err).WithField("gameId", g.ID).Warn("list games: valuation failed")
		}
		out = append(out, GameSummary{Game: *g, Snapshot: snap})
	}
	return out, total, nil
}

// Transactions returns the owned game's trade history, newest first.
func (s *Service) Transactions(ctx context.Context, userID string, opts repository.TransactionSearchOptions) ([]model.Transaction, int64, error) {
	if _, err := s.games.FindForUser(ctx, opts.GameID, userID); err != nil {
		return nil, 0, err
	}
	return s.txns.Search(ctx, opts)
}

// Preview prices a trade at the owned game's current date without executing it. The
// request goes through the same checks as a trade before any price is looked up.
func (s *Service) Preview(ctx context.Context, req ledger.TradeRequest, prices ledger.PriceLookup) (*portfolio.Preview, error) {
	req, err := ledger.Normalize(req)
	if err != nil {
		return nil, err
	}
	game, err := s.games.FindForUser(ctx, req.GameID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !game.IsActive() {
		return nil, apperr.Validation("game is not active")
	}
	price := prices.GetPrice(ctx, req.Symbol, game.CurrentDate)
	if price == nil {
		return nil, apperr.Validation("no price available for %s on %s", req.Symbol, game.CurrentDate.String())
	}
	p := portfolio.CalculateTransactionPreview(req.Type, req.Quantity, *price, game.GetSettings().TransactionFees)
	return &p, nil
}

type AchievementsView struct {
	Unlocked  []model.UserAchievement `json:"unlocked"`
	Available []model.Achievement     `json:"available"`
	Points    int                     `json:"totalPoints"`
}

// GameAchievements lists the owned game's unlocked and still available achievements.
func (s *Service) GameAchievements(ctx context.Context, gameID, userID string) (*AchievementsView, error) {
	if _, err := s.games.FindForUser(ctx, gameID, userID); err != nil {
		return nil, err
	}
	unlocked, err := s.achievements.Unlocked(ctx, gameID)
	if err != nil {
		return nil, err
	}
	available, err := s.achievements.Available(ctx, gameID)
	if err != nil {
		return nil, err
	}
	points, err := s.achievements.TotalPoints(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &AchievementsView{Unlocked: unlocked, Available: available, Points: points}, nil
}

// ----- trading -----

type TradeOutcome struct {
	*ledger.TradeResult
	Achievements []model.Achievement `json:"achievementsUnlocked"`
}

// Trade executes the trade and then checks achievements.
func (s *Service) Trade(ctx context.Context, req ledger.TradeRequest) (*TradeOutcome, error) {
	res, err := s.ledger.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	unlocked := s.achievements.CheckAndUnlock(ctx, req.GameID)
	if unlocked == nil {
		unlocked = []model.Achievement{}
	}
	return &TradeOutcome{TradeResult: res, Achievements: unlocked}, nil
}

// ----- day advance -----

type AdvanceResult struct {
	PreviousDate  model.Date          `json:"previousDate"`
	NewDate       model.Date          `json:"newDate"`
	RecordsStored int64               `json:"recordsStored"`
	Portfolio     *portfolio.Snapshot `json:"portfolio"`
	Achievements  []model.Achievement `json:"achievementsUnlocked"`
	RemainingDays int                 `json:"remainingDays"`
}

// AdvanceToNextDay moves the game to the next business day. The new day is prefetched
// and valued before the date is written, so a valuation failure leaves the game where
// it was. Achievements are checked last and never fail the advance.
func (s *Service) AdvanceToNextDay(ctx context.Context, gameID, userID string) (*AdvanceResult, error) {
	unlock := s.lanes.Lock(gameID)
	res, err := s.advance(ctx, gameID, userID)
	unlock()
	if err != nil {
		metrics.DayAdvancesTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}
	metrics.DayAdvancesTotal.WithLabelValues("ok").Inc()

	res.Achievements = s.achievements.CheckAndUnlock(ctx, gameID)
	if res.Achievements == nil {
		res.Achievements = []model.Achievement{}
	}

	s.publisher.Publish(stream.Event{
		Type:   stream.EventDayAdvanced,
		GameID: gameID,
		Data:   res,
	})
	return res, nil
}

func (s *Service) advance(ctx context.Context, gameID, userID string) (*AdvanceResult, error) {
	game, err := s.find(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if !game.IsActive() {
		return nil, apperr.Validation("game is not active")
	}

	today := s.today()
	next := utils.NextBusinessDay(game.CurrentDate)
	if next.After(today) {
		return nil, apperr.Validation("the game has reached the current date, cannot advance further")
	}

	log := logger.WithFields(map[string]interface{}{
		"component": "GameService",
		"gameId":    game.ID,
		"from":      game.CurrentDate.String(),
		"to":        next.String(),
	})

	var stored int64
	if s.prefetch != nil {
		stored = s.prefetch.PrefetchSingleDay(ctx, next)
	}

	snap, err := s.engine.CalculatePortfolio(ctx, game.ID, next)
	if err != nil {
		log.WithError(err).Error("valuation at new date failed")
		return nil, err
	}

	if err := s.games.UpdateCurrentDate(ctx, game.ID, next); err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{
		"recordsStored": stored,
		"totalValue":    snap.TotalValue.String(),
		"skipped":       snap.SkippedHoldings,
	}).Info("day advanced")

	return &AdvanceResult{
		PreviousDate:  game.CurrentDate,
		NewDate:       next,
		RecordsStored: stored,
		Portfolio:     snap,
		RemainingDays: utils.RemainingBusinessDays(next, today),
	}, nil
}

// AdvanceMultipleDays advances up to n days, stopping at the first failure. It returns
// the last successful result together with that failure, if any.
func (s *Service) AdvanceMultipleDays(ctx context.Context, gameID, userID string, n int) (*AdvanceResult, error) {
	if n < 1 || n > s.cfg.MaxAdvanceDays {
		return nil, apperr.Validation("days must be between 1 and %d", s.cfg.MaxAdvanceDays)
	}

	var last *AdvanceResult
	for i := 0; i < n; i++ {
		res, err := s.AdvanceToNextDay(ctx, gameID, userID)
		if err != nil {
			return last, err
		}
		last = res
	}
	return last, nil
}

// RemainingDays counts the business days a game at current can still advance.
func (s *Service) RemainingDays(current model.Date) int {
	return utils.RemainingBusinessDays(current, s.today())
}

func (s *Service) find(ctx context.Context, gameID, userID string) (*model.Game, error) {
	if userID == "" {
		return s.games.FindByID(ctx, gameID)
	}
	return s.games.FindForUser(ctx, gameID, userID)
}

func outcome(err error) string {
	switch {
	case apperr.IsValidation(err):
		return "rejected"
	case apperr.IsNotFound(err):
		return "not_found"
	}
	return "error"
}

// ----- status -----

// UpdateStatus pauses, resumes or completes an owned game. Completed is terminal, and
// resuming counts against the active game limit like a creation does.
func (s *Service) UpdateStatus(ctx context.Context, gameID, userID string, status model.GameStatus) (*model.Game, error) {
	switch status {
	case model.GameStatusActive, model.GameStatusPaused, model.GameStatusCompleted:
	default:
		return nil, apperr.Validation("status must be one of active, paused, completed")
	}

	unlock := s.lanes.Lock(gameID)
	defer unlock()

	game, err := s.games.FindForUser(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if game.Status == status {
		return game, nil
	}
	if game.Status == model.GameStatusCompleted {
		return nil, apperr.Validation("game is completed and cannot change status")
	}
	if status == model.GameStatusActive {
		active, err := s.games.CountActiveByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if active >= risk.MaxActiveGames {
			return nil, apperr.Validation("limit of %d active games reached, finish or pause an existing game", risk.MaxActiveGames)
		}
	}

	if err := s.games.UpdateStatus(ctx, game.ID, status); err != nil {
		return nil, err
	}
	logger.WithFields(map[string]interface{}{
		"component": "GameService",
		"gameId":    game.ID,
		"from":      game.Status,
		"to":        status,
	}).Info("game status changed")
	game.Status = status

	s.publisher.Publish(stream.Event{
		Type:   stream.EventStatusChanged,
		GameID: game.ID,
		Data:   map[string]interface{}{"status": status},
	})
	return game, nil
}

// ----- retention -----

// CleanupInactive deletes completed games untouched for the retention window.
func (s *Service) CleanupInactive(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays)
	deleted, err := s.games.DeleteCompletedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logger.WithFields(map[string]interface{}{
		"component": "GameService",
		"cutoff":    cutoff.Format(time.RFC3339),
		"deleted":   deleted,
	}).Info("inactive games cleaned up")
	return deleted, nil
}
