// Package bot wires the evaluator, sizer, ledger and collaborators into
// the scan/execute loop and drives it on a fixed interval.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/swingbot/config"
	"github.com/rustyeddy/swingbot/journal"
	"github.com/rustyeddy/swingbot/ledger"
	"github.com/rustyeddy/swingbot/market"
	"github.com/rustyeddy/swingbot/notify"
	"github.com/rustyeddy/swingbot/risk"
	"github.com/rustyeddy/swingbot/strategy"
)

// MarketData is the market-data and balance collaborator. exchange.Client
// implements it; tests substitute fakes.
type MarketData interface {
	Candles(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error)
	Price(ctx context.Context, symbol string) (float64, error)
	Balance(ctx context.Context, asset string) (float64, error)
}

// Options collects the bot's dependencies. Config and Data are required;
// the rest default to no-ops.
type Options struct {
	Config   *config.Config
	Log      *zap.Logger
	Data     MarketData
	Journal  journal.Journal
	Notifier notify.Notifier
	Swing    *strategy.Swing // default strategy.NewSwing()
}

// Bot runs the scan/execute loop. All position state lives in the ledger
// it owns; iterations never overlap.
type Bot struct {
	cfg      *config.Config
	log      *zap.Logger
	data     MarketData
	journal  journal.Journal
	notifier notify.Notifier
	swing    *strategy.Swing
	risk     risk.Parameters
	ledger   *ledger.Ledger

	cycle int
	now   func() time.Time
}

func New(opts Options) (*Bot, error) {
	if opts.Config == nil {
		return nil, errors.New("bot: config is required")
	}
	if opts.Data == nil {
		return nil, errors.New("bot: market data source is required")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	if opts.Swing == nil {
		opts.Swing = strategy.NewSwing()
	}

	cfg := opts.Config
	return &Bot{
		cfg:      cfg,
		log:      opts.Log,
		data:     opts.Data,
		journal:  opts.Journal,
		notifier: opts.Notifier,
		swing:    opts.Swing,
		risk: risk.Parameters{
			Capital:       cfg.Account.Capital,
			RiskPerTrade:  cfg.Risk.RiskPerTrade,
			MinRewardRisk: cfg.Risk.MinRewardRisk,
			MaxPositions:  cfg.Risk.MaxPositions,
			MinNotional:   cfg.Risk.MinNotional,
		},
		ledger: ledger.New(cfg.Risk.MaxPositions),
		now:    time.Now,
	}, nil
}

// Ledger exposes the bot's position ledger (read access for status
// reporting).
func (b *Bot) Ledger() *ledger.Ledger { return b.ledger }

// RunOnce executes a single iteration: balance pre-flight, exit
// monitoring for open positions, then a scan for new setups if capacity
// remains. Failures on one instrument are logged and skipped; nothing in
// an iteration propagates.
func (b *Bot) RunOnce(ctx context.Context) {
	b.cycle++
	log := b.log.With(zap.Int("cycle", b.cycle))
	log.Info("starting trading cycle")

	balance, err := b.data.Balance(ctx, b.cfg.Account.Asset)
	if err != nil {
		log.Warn("balance check failed, skipping iteration", zap.Error(err))
		return
	}
	if balance < b.cfg.Account.MinBalance {
		log.Warn("insufficient balance, skipping iteration",
			zap.Float64("balance", balance),
			zap.Float64("min_balance", b.cfg.Account.MinBalance))
		return
	}

	b.monitorPositions(ctx, log)

	if b.ledger.OpenCount() < b.risk.MaxPositions {
		b.scanMarkets(ctx, log)
	}

	log.Info("cycle complete", zap.Int("open_positions", b.ledger.OpenCount()))
}

// monitorPositions checks every open position against the current price
// and closes the ones whose stop or take level has been touched.
func (b *Bot) monitorPositions(ctx context.Context, log *zap.Logger) {
	for _, p := range b.ledger.OpenPositions() {
		price, err := b.data.Price(ctx, p.Symbol)
		if err != nil {
			log.Warn("price fetch failed", zap.String("symbol", p.Symbol), zap.Error(err))
			continue
		}

		reason, hit := b.ledger.CheckExit(p.Symbol, price)
		if !hit {
			continue
		}

		closed, ok := b.ledger.Close(p.Symbol, price, reason, b.now())
		if !ok {
			continue
		}

		log.Info("position closed",
			zap.String("trade_id", closed.ID),
			zap.String("symbol", closed.Symbol),
			zap.String("reason", string(reason)),
			zap.Float64("exit_price", price),
			zap.Float64("pnl", closed.PnL),
			zap.Float64("pnl_percent", closed.PnLPercent))

		if b.journal != nil {
			if err := b.journal.RecordExit(closed.ID, journal.NewExit(closed)); err != nil {
				log.Error("journal exit failed", zap.String("trade_id", closed.ID), zap.Error(err))
			}
		}
		if err := b.notifier.Send(ctx, notify.FormatExit(closed, b.cfg.Strategy.Timeframe)); err != nil {
			log.Warn("exit notification failed", zap.Error(err))
		}
	}
}

// scanMarkets evaluates every tracked symbol that has no open position
// and opens paper trades for the setups that clear sizing and capacity.
func (b *Bot) scanMarkets(ctx context.Context, log *zap.Logger) {
	for _, symbol := range b.cfg.Strategy.Symbols {
		if _, open := b.ledger.Get(symbol); open {
			continue
		}
		if b.ledger.OpenCount() >= b.risk.MaxPositions {
			return
		}
		b.scanSymbol(ctx, log, symbol)
	}
}

// scanSymbol is isolated per instrument: any failure, including a panic,
// is logged with symbol context and does not abort the iteration.
func (b *Bot) scanSymbol(ctx context.Context, log *zap.Logger, symbol string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("symbol scan panicked",
				zap.String("symbol", symbol), zap.Any("panic", r))
		}
	}()

	candles, err := b.data.Candles(ctx, symbol, b.cfg.Strategy.Timeframe, b.cfg.Strategy.History)
	if err != nil {
		log.Warn("candle fetch failed", zap.String("symbol", symbol), zap.Error(err))
		return
	}

	sig := b.swing.Evaluate(symbol, candles)
	if sig.Action == strategy.Hold {
		log.Debug("no setup", zap.String("symbol", symbol), zap.String("reason", sig.Reason))
		return
	}

	log.Info("signal found",
		zap.String("symbol", symbol),
		zap.String("action", string(sig.Action)),
		zap.Float64("entry", sig.Entry),
		zap.Float64("stop_loss", sig.StopLoss),
		zap.String("reason", sig.Reason))

	b.execute(ctx, log, sig)
}

// execute sizes the signal and opens the position.
func (b *Bot) execute(ctx context.Context, log *zap.Logger, sig strategy.Signal) {
	qty, adjusted, err := b.risk.PositionSize(sig.Entry, sig.StopLoss)
	if err != nil {
		// Zero-width stop: defined no-trade case, not a failure.
		log.Warn("signal not sizeable", zap.String("symbol", sig.Symbol), zap.Error(err))
		return
	}
	if adjusted {
		log.Warn("position size raised to minimum notional",
			zap.String("symbol", sig.Symbol),
			zap.Float64("quantity", qty),
			zap.Float64("min_notional", b.risk.MinNotional))
	}

	dir := ledger.Long
	short := sig.Action == strategy.Sell
	if short {
		dir = ledger.Short
	}
	take := b.risk.TakeProfit(sig.Entry, sig.StopLoss, short)

	pos, err := b.ledger.Open(sig.Symbol, dir, sig.Entry, qty, sig.StopLoss, take, b.now())
	if err != nil {
		log.Info("entry rejected", zap.String("symbol", sig.Symbol), zap.Error(err))
		return
	}

	log.Info("paper trade opened",
		zap.String("trade_id", pos.ID),
		zap.String("symbol", pos.Symbol),
		zap.String("direction", string(pos.Direction)),
		zap.Float64("entry", pos.EntryPrice),
		zap.Float64("quantity", pos.Quantity),
		zap.Float64("stop_loss", pos.StopLoss),
		zap.Float64("take_profit", pos.TakeProfit))

	if b.journal != nil {
		if err := b.journal.RecordEntry(journal.NewEntry(pos, sig.Reason, sig.Confidence)); err != nil {
			log.Error("journal entry failed", zap.String("trade_id", pos.ID), zap.Error(err))
		}
	}
	msg := notify.FormatEntry(pos, b.cfg.Strategy.Timeframe, sig.Reason, sig.Confidence)
	if err := b.notifier.Send(ctx, msg); err != nil {
		log.Warn("entry notification failed", zap.Error(err))
	}
}

// Run drives RunOnce on the configured interval until ctx is cancelled.
// The in-flight iteration always completes; cancellation is only observed
// between iterations. A panic escaping the scheduler itself is fatal and
// triggers a last-gasp crash notification.
func (b *Bot) Run(ctx context.Context) (err error) {
	interval, perr := b.cfg.Scan.ParseInterval()
	if perr != nil {
		return fmt.Errorf("bot: bad scan interval: %w", perr)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bot: scheduler failure: %v", r)
			b.log.Error("scheduler failure", zap.Any("panic", r))
			_ = b.notifier.Send(context.Background(),
				notify.FormatCrash(b.cfg.Strategy.Timeframe, err))
		}
	}()

	startMsg := notify.FormatStarted(b.cfg.Strategy.Timeframe,
		b.cfg.Account.Capital, b.cfg.Risk.RiskPerTrade,
		b.cfg.Strategy.Symbols, b.now())
	if nerr := b.notifier.Send(ctx, startMsg); nerr != nil {
		b.log.Warn("start notification failed", zap.Error(nerr))
	}

	b.log.Info("scheduler started",
		zap.Duration("interval", interval),
		zap.Strings("symbols", b.cfg.Strategy.Symbols))

	b.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("scheduler stopped")
			_ = b.notifier.Send(context.Background(),
				notify.FormatStopped(b.cfg.Strategy.Timeframe, b.now()))
			return nil
		case <-ticker.C:
			b.RunOnce(ctx)
		}
	}
}
