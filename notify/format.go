package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/swingbot/ledger"
)

// Alert formatting follows the layout of the bot's Telegram messages: an
// HTML block per event with a per-timeframe emoji tag so alerts from
// different scan frequencies are told apart at a glance.

var timeframeEmoji = map[string]string{
	"4h": "\U0001F422", // turtle, slow scans
	"3h": "\U0001F6B6", // walker
	"2h": "\U0001F6B4", // biker
	"1h": "\U0001F680", // rocket, fastest
}

func tag(timeframe string) string {
	if e, ok := timeframeEmoji[strings.ToLower(timeframe)]; ok {
		return e
	}
	return "\U0001F916" // robot
}

const divider = "------------------"

// FormatStarted is the startup banner.
func FormatStarted(timeframe string, capital, riskPerTrade float64, symbols []string, at time.Time) string {
	return fmt.Sprintf(
		"%s <b>Swing Bot Started [%s]</b>\n"+
			"Capital: $%.2f\n"+
			"Risk/Trade: %.1f%%\n"+
			"Pairs: %s\n"+
			"<i>%s</i>",
		tag(timeframe), strings.ToUpper(timeframe),
		capital, riskPerTrade*100,
		strings.Join(symbols, ", "),
		at.Format("2006-01-02 15:04:05"),
	)
}

// FormatStopped is the shutdown notice.
func FormatStopped(timeframe string, at time.Time) string {
	return fmt.Sprintf("\U0001F6D1 <b>Swing Bot Stopped [%s]</b>\n<i>%s</i>",
		strings.ToUpper(timeframe), at.Format("2006-01-02 15:04:05"))
}

// FormatEntry renders a trade-entry alert.
func FormatEntry(p ledger.Position, timeframe, reason, confidence string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>TRADE ENTRY [%s]</b>\n", tag(timeframe), strings.ToUpper(timeframe))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "<b>Symbol:</b> %s\n", p.Symbol)
	fmt.Fprintf(&b, "<b>Side:</b> %s\n", p.Direction)
	fmt.Fprintf(&b, "<b>Entry:</b> $%.2f\n", p.EntryPrice)
	fmt.Fprintf(&b, "<b>Quantity:</b> %.6f\n", p.Quantity)
	fmt.Fprintf(&b, "<b>Stop Loss:</b> $%.2f\n", p.StopLoss)
	fmt.Fprintf(&b, "<b>Take Profit:</b> $%.2f\n", p.TakeProfit)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "<b>Reason:</b> %s\n", reason)
	fmt.Fprintf(&b, "<b>Confidence:</b> %s\n", confidence)
	fmt.Fprintf(&b, "<i>%s</i>", p.OpenTime.Format("2006-01-02 15:04:05"))
	return b.String()
}

// FormatExit renders a trade-exit alert with a gain/loss marker.
func FormatExit(p ledger.Position, timeframe string) string {
	pnlMark := "\U0001F4C8" // chart up
	if p.PnL < 0 {
		pnlMark = "\U0001F4C9" // chart down
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>TRADE EXIT [%s]</b>\n", tag(timeframe), strings.ToUpper(timeframe))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "<b>Symbol:</b> %s\n", p.Symbol)
	fmt.Fprintf(&b, "<b>Side:</b> %s\n", p.Direction)
	fmt.Fprintf(&b, "<b>Entry:</b> $%.2f\n", p.EntryPrice)
	fmt.Fprintf(&b, "<b>Exit:</b> $%.2f\n", p.ExitPrice)
	fmt.Fprintf(&b, "<b>Duration:</b> %s\n", p.Duration(p.ExitTime).Round(time.Second))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "<b>P&amp;L:</b> %s $%.2f (%.2f%%)\n", pnlMark, p.PnL, p.PnLPercent)
	fmt.Fprintf(&b, "<b>Reason:</b> %s\n", p.ExitReason)
	fmt.Fprintf(&b, "<i>%s</i>", p.ExitTime.Format("2006-01-02 15:04:05"))
	return b.String()
}

// FormatCrash is the last-gasp message sent when the scheduler dies.
func FormatCrash(timeframe string, err error) string {
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return fmt.Sprintf("\U0001F6A8 <b>Swing Bot Crashed [%s]</b>\n%s",
		strings.ToUpper(timeframe), msg)
}
