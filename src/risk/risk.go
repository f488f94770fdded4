package risk

import (
	"fmt"

	"financequest/src/apperr"
	"financequest/src/assets"
	"financequest/src/model"

	"github.com/shopspring/decimal"
)

// ----- limits -----

const (
	MaxActiveGames = 5
	MaxHistoryDays = 5 * 365
)

var (
	// ShortMarginRatio is the share of notional value that must be available as balance to open a short.
	ShortMarginRatio = decimal.RequireFromString("0.5")
	MaxFeePercent    = decimal.NewFromInt(5)
	MinStartDate     = model.NewDate(2020, 1, 1)

	hundred = decimal.NewFromInt(100)
)

// ----- result -----

type Kind string

const (
	KindNone       Kind = ""
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflicting_position"
)

// Result is the outcome of a validator. Reason is user facing.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Kind   Kind   `json:"kind,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func invalid(format string, args ...interface{}) Result {
	return Result{Kind: KindValidation, Reason: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) Result {
	return Result{Kind: KindConflict, Reason: fmt.Sprintf(format, args...)}
}

// Err maps an invalid result onto the apperr taxonomy. It returns nil when valid.
func (r Result) Err(symbol string) error {
	if r.Valid {
		return nil
	}
	if r.Kind == KindConflict {
		return apperr.Conflict(symbol, "%s", r.Reason)
	}
	return apperr.Validation("%s", r.Reason)
}

// ----- trades -----

// TradeInput is everything a trade validator looks at. Long and Short are the
// existing positions on Symbol, nil when absent.
type TradeInput struct {
	Game     *model.Game
	Symbol   string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Long     *model.Holding
	Short    *model.Holding
}

// Validate dispatches on the transaction type.
func Validate(typ model.TransactionType, in TradeInput) Result {
	switch typ {
	case model.TransactionBuy:
		return ValidateBuy(in)
	case model.TransactionSell:
		return ValidateSell(in)
	case model.TransactionShort:
		return ValidateShort(in)
	case model.TransactionCover:
		return ValidateCover(in)
	}
	return invalid("invalid transaction type %q", typ)
}

func ValidateBuy(in TradeInput) Result {
	if r := common(in); !r.Valid {
		return r
	}
	if in.Short != nil {
		return conflict("cannot buy %s: an open short position exists", in.Symbol)
	}
	return requireBalance(in, "insufficient balance")
}

func ValidateSell(in TradeInput) Result {
	if r := common(in); !r.Valid {
		return r
	}
	if in.Long == nil {
		return invalid("you do not hold %s", in.Symbol)
	}
	if in.Long.Quantity.LessThan(in.Quantity) {
		return invalid("insufficient quantity: held %s, requested %s", in.Long.Quantity.String(), in.Quantity.String())
	}
	return ok()
}

func ValidateShort(in TradeInput) Result {
	if in.Game != nil && !in.Game.GetSettings().AllowShorting {
		return invalid("short selling is disabled for this game")
	}
	if r := common(in); !r.Valid {
		return r
	}
	if in.Long != nil {
		return conflict("cannot short %s: a long position exists", in.Symbol)
	}

	required := in.Price.Mul(in.Quantity).Mul(ShortMarginRatio)
	if in.Game.CurrentBalance.LessThan(required) {
		return invalid("insufficient margin: required %s, available %s",
			required.StringFixed(2), in.Game.CurrentBalance.StringFixed(2))
	}
	return ok()
}

func ValidateCover(in TradeInput) Result {
	if r := common(in); !r.Valid {
		return r
	}
	if in.Short == nil {
		return invalid("no short position on %s", in.Symbol)
	}
	if in.Short.Quantity.LessThan(in.Quantity) {
		return invalid("insufficient quantity: short position %s, requested %s", in.Short.Quantity.String(), in.Quantity.String())
	}
	return requireBalance(in, "insufficient balance to cover")
}

// common runs the checks shared by every trade type, in order: quantity, symbol, game.
func common(in TradeInput) Result {
	if !in.Quantity.IsPositive() {
		return invalid("quantity must be greater than 0")
	}
	if !assets.IsValidSymbol(in.Symbol) {
		return invalid("invalid symbol %q", in.Symbol)
	}
	if in.Game == nil {
		return invalid("game not found")
	}
	if !in.Game.IsActive() {
		return invalid("game is not active")
	}
	if !in.Price.IsPositive() {
		return invalid("no price available for %s", in.Symbol)
	}
	return ok()
}

func requireBalance(in TradeInput, label string) Result {
	subtotal := in.Price.Mul(in.Quantity)
	required := subtotal.Add(subtotal.Mul(in.Game.GetSettings().TransactionFees).Div(hundred))
	if in.Game.CurrentBalance.LessThan(required) {
		return invalid("%s: required %s, available %s", label,
			required.StringFixed(2), in.Game.CurrentBalance.StringFixed(2))
	}
	return ok()
}

// ----- game creation -----

// ValidateGameCreation checks the requested start date against today and the user's
// active game count. The parsed date is returned when valid.
func ValidateGameCreation(startDate string, today model.Date, activeGames int64) (model.Date, Result) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return model.Date{}, invalid("invalid date format, expected YYYY-MM-DD")
	}
	if start.Before(MinStartDate) {
		return model.Date{}, invalid("start date must be on or after %s", MinStartDate.String())
	}
	if start.After(today) {
		return model.Date{}, invalid("start date cannot be in the future")
	}
	if start.Before(today.AddDays(-MaxHistoryDays)) {
		return model.Date{}, invalid("start date cannot be more than %d days in the past", MaxHistoryDays)
	}
	if activeGames >= MaxActiveGames {
		return model.Date{}, invalid("limit of %d active games reached, finish or pause an existing game", MaxActiveGames)
	}
	return start, ok()
}

// ValidateSettings checks user supplied game settings.
func ValidateSettings(s model.GameSettings) Result {
	if s.TransactionFees.IsNegative() || s.TransactionFees.GreaterThan(MaxFeePercent) {
		return invalid("transaction fees must be between 0 and %s percent", MaxFeePercent.String())
	}
	return ok()
}
