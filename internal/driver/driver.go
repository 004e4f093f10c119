// Package driver plays battles without a user interface. It applies
// scripted orders at the start of every planning phase, resolves whole
// turns and hands each post-turn snapshot to a recorder.
package driver

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/scenario"
	"github.com/vovakirdan/tui-wego/internal/scenario/formats"
)

// TurnRecorder persists the state of a battle after each turn.
// *storage.Store implements it.
type TurnRecorder interface {
	SaveTurn(battleID string, turn, ticks int, snap battle.Snapshot) error
}

// Options configures Run.
type Options struct {
	Turns    int          // Turns to play; 0 plays the whole script (at least one turn)
	Recorder TurnRecorder // Optional
	Logger   *log.Logger  // Optional; nil discards output
}

// Result summarises a headless run.
type Result struct {
	Turns int             // Turns resolved
	Ticks int             // Total ticks executed
	Final battle.Snapshot // State after the last resolved turn
}

// Run plays turns until the requested count is reached or ctx is done.
// Cancellation is only observed between turns: a turn that has started
// always runs to completion.
func Run(ctx context.Context, b *battle.Battle, script scenario.Script, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("battle", b.ID())

	turns := opts.Turns
	if turns <= 0 {
		turns = max(len(script), 1)
	}

	ctrl := b.Controller()
	unsubscribe := ctrl.Subscribe(func(ev battle.Event) {
		if pc, ok := ev.(battle.PhaseChangedEvent); ok {
			logger.Debug("phase changed", "from", pc.From, "to", pc.To, "turn", pc.Turn)
		}
	})
	defer unsubscribe()

	var res Result
	for res.Turns < turns {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", "turns", res.Turns)
			res.Final = b.Snapshot()
			return res, err
		}

		turn := ctrl.Turn()
		applied := applyOrders(b, script.OrdersFor(turn), logger)

		ticks := b.RunTurn()
		res.Turns++
		res.Ticks += ticks

		snap := b.Snapshot()
		logger.Info("turn resolved",
			"turn", snap.Turn,
			"ticks", ticks,
			"orders", applied,
			"pending", countPending(b),
		)

		if opts.Recorder != nil {
			if err := opts.Recorder.SaveTurn(b.ID(), snap.Turn, ticks, snap); err != nil {
				res.Final = snap
				return res, fmt.Errorf("driver: record turn %d: %w", snap.Turn, err)
			}
		}
	}

	res.Final = b.Snapshot()
	return res, nil
}

// applyOrders issues scripted orders; rejected orders are logged and skipped.
func applyOrders(b *battle.Battle, steps []formats.Step, logger *log.Logger) int {
	applied := 0
	for _, st := range steps {
		if err := b.Command(st.Regiment, st.Order); err != nil {
			logger.Warn("scripted order rejected", "regiment", st.Regiment, "order", st.Order, "err", err)
			continue
		}
		logger.Debug("order issued", "regiment", st.Regiment, "order", st.Order)
		applied++
	}
	return applied
}

// countPending counts regiments still holding an order after the turn.
func countPending(b *battle.Battle) int {
	n := 0
	for _, r := range b.Regiments() {
		if _, ok := r.Order(); ok {
			n++
		}
	}
	return n
}
