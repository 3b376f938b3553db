package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/quote"
	"github.com/ndewijer/Position-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Position-Ledger-Backend/internal/validation"
)

// PositionService handles stock position business logic: opening positions at a quoted price,
// refreshing prices, closing positions and totalling profit/loss over the active set.
type PositionService struct {
	db           *sql.DB
	positionRepo *repository.PositionRepository
	quotes       quote.Provider
	log          zerolog.Logger
	now          func() time.Time
}

// NewPositionService creates a new PositionService with the provided dependencies.
func NewPositionService(
	db *sql.DB,
	positionRepo *repository.PositionRepository,
	quotes quote.Provider,
	log zerolog.Logger,
) *PositionService {
	return &PositionService{
		db:           db,
		positionRepo: positionRepo,
		quotes:       quotes,
		log:          log.With().Str("service", "position").Logger(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// OpenPosition validates the request, looks up the current price and stores a new active position.
//
// Errors:
//   - validation.Error (unwraps to apperrors.ErrValidation) for bad input
//   - apperrors.ErrQuoteUnavailable if no price could be fetched
//   - apperrors.ErrDuplicatePosition if the symbol already has an active position
//
// The returned position is not added to any ActiveSet; callers do that with ActiveSet.Add.
func (s *PositionService) OpenPosition(ctx context.Context, req request.OpenPositionRequest) (model.Position, error) {
	p, err := validation.ValidateOpenPosition(req)
	if err != nil {
		return model.Position{}, err
	}

	price, err := s.latestPrice(ctx, p.Symbol)
	if err != nil {
		return model.Position{}, err
	}

	now := s.now()
	p.ID = uuid.New().String()
	p.PurchaseDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	p.CreatedAt = now
	p = withPrice(p, price)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.positionRepo.WithTx(tx)

	exists, err := repo.ActiveExistsBySymbol(ctx, p.Symbol)
	if err != nil {
		return model.Position{}, err
	}
	if exists {
		return model.Position{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicatePosition, p.Symbol)
	}

	if err := repo.Insert(ctx, p); err != nil {
		return model.Position{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Position{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info().
		Str("position_id", p.ID).
		Str("symbol", p.Symbol).
		Str("price", p.CurrentPrice.String()).
		Msg("position opened")

	return p, nil
}

// RefreshPrice fetches a new price for p, recomputes its profit/loss and persists both.
// On a quote failure p is returned unchanged together with apperrors.ErrQuoteUnavailable,
// and the stored row is not touched.
func (s *PositionService) RefreshPrice(ctx context.Context, p model.Position) (model.Position, error) {
	price, err := s.latestPrice(ctx, p.Symbol)
	if err != nil {
		return p, err
	}

	updated := withPrice(p, price)
	if err := s.positionRepo.UpdatePrice(ctx, updated.ID, updated.CurrentPrice, updated.ProfitLossPct); err != nil {
		return p, err
	}

	s.log.Debug().
		Str("position_id", p.ID).
		Str("symbol", p.Symbol).
		Str("price", updated.CurrentPrice.String()).
		Msg("position refreshed")

	return updated, nil
}

// ClosePosition closes the active position for symbol.
//
// The final profit/loss is computed from the stored purchase price and the current price
// cached on the active entry. The stored row gets its final price, profit/loss and close time
// in a single update. The remaining set is active minus symbol with every other entry unchanged.
//
// Returns apperrors.ErrPositionNotFound if symbol is not in active.
func (s *PositionService) ClosePosition(ctx context.Context, active model.ActiveSet, symbol string) (model.ClosedPosition, error) {
	symbol = validation.NormalizeSymbol(symbol)
	entry, ok := active.Find(symbol)
	if !ok {
		return model.ClosedPosition{}, fmt.Errorf("%w: %s", apperrors.ErrPositionNotFound, symbol)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ClosedPosition{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.positionRepo.WithTx(tx)

	stored, err := repo.GetActiveByID(ctx, entry.ID)
	if err != nil {
		return model.ClosedPosition{}, err
	}

	final := withPrice(stored, entry.CurrentPrice)
	closedAt := s.now()
	final.ClosedAt = &closedAt

	if err := repo.Close(ctx, final.ID, final.CurrentPrice, final.ProfitLossPct, closedAt); err != nil {
		return model.ClosedPosition{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.ClosedPosition{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info().
		Str("position_id", final.ID).
		Str("symbol", final.Symbol).
		Str("profit_loss_pct", final.ProfitLossPct.String()).
		Msg("position closed")

	return model.ClosedPosition{
		Position:           final,
		FinalProfitLossPct: final.ProfitLossPct,
		Remaining:          active.Without(symbol),
	}, nil
}

// ActivePositions returns the active set as stored, ordered by purchase date then creation.
func (s *PositionService) ActivePositions(ctx context.Context) (model.ActiveSet, error) {
	return s.positionRepo.GetActive(ctx)
}

// GetPosition returns a position by ID, active or closed.
func (s *PositionService) GetPosition(ctx context.Context, id string) (model.Position, error) {
	return s.positionRepo.GetByID(ctx, id)
}

// GetActivePosition returns a position by ID only while it is active.
func (s *PositionService) GetActivePosition(ctx context.Context, id string) (model.Position, error) {
	return s.positionRepo.GetActiveByID(ctx, id)
}

// Overview returns the active set with its total profit/loss.
func (s *PositionService) Overview(ctx context.Context) (model.PositionOverview, error) {
	active, err := s.ActivePositions(ctx)
	if err != nil {
		return model.PositionOverview{}, err
	}
	return model.PositionOverview{
		Positions:          active,
		TotalProfitLossPct: TotalProfitLoss(active),
	}, nil
}

// latestPrice asks the quote provider for symbol's price.
// Errors always wrap apperrors.ErrQuoteUnavailable.
func (s *PositionService) latestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := s.quotes.LatestPrice(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Str("provider", s.quotes.Name()).Msg("quote lookup failed")
		if !errors.Is(err, apperrors.ErrQuoteUnavailable) {
			err = fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
		}
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s: negative price", apperrors.ErrQuoteUnavailable, symbol)
	}
	return price, nil
}
