package replay

import (
	"fmt"

	"mahjong/config"
	"mahjong/events"
	"mahjong/evaluator"
	"mahjong/service"
	"mahjong/state"
)

// RunnerOptions configures Run.
type RunnerOptions struct {
	// Strict turns any private Error event produced while applying the
	// recorded action stream into a failed run instead of a silently
	// ignored one.
	Strict bool
	// MaxSteps caps how many input events Run will apply before giving up
	// (a safety net distinct from MaxEvents' file-size cap — this guards
	// against the drive loop never settling). Zero means len(input.Events).
	MaxSteps int
	// Settings overrides the default table a replayed game starts with.
	// The replay format itself carries no settings (§6's game_started
	// record has only seed/rng_version/players), so a replay always
	// reconstructs under whichever settings the caller supplies here
	// (config.Default() if the zero value).
	Settings config.Settings
}

// RunResult summarizes a completed (or failed) replay run.
type RunResult struct {
	GameID      string
	StepsPlayed int
	FinalState  *state.GameState
	AllEvents   []events.Event
}

// FailedStepError reports the input event index a replay could not apply.
type FailedStepError struct {
	Index  int
	Seat   int
	Action service.Action
	Err    error
}

func (e *FailedStepError) Error() string {
	return fmt.Sprintf("replay: step %d (seat %d, %s): %v", e.Index, e.Seat, e.Action, e.Err)
}
func (e *FailedStepError) Unwrap() error { return e.Err }

// Run drives a fresh Service through input's recorded actions in order,
// auto-passing any pending-prompt seat the log has no decisive action for
// before moving on (§4.13: passes are never logged, only resolved calls
// and declarations are).
func Run(input *ReplayInput, ev evaluator.HandEvaluator, opts RunnerOptions) (*RunResult, error) {
	settings := opts.Settings
	if settings == (config.Settings{}) {
		settings = config.Default()
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = len(input.Events)
	}

	svc := service.New(ev, nil, 0)
	defer svc.Stop()

	gameID, startEvs, err := svc.StartGameWithSeed(input.Names, input.SeedHex, settings)
	if err != nil {
		return nil, fmt.Errorf("replay: start game: %w", err)
	}
	all := append([]events.Event(nil), startEvs...)
	if err := checkStrict(opts.Strict, startEvs); err != nil {
		return nil, err
	}

	steps := 0
	for i, in := range input.Events {
		if steps >= maxSteps {
			return nil, fmt.Errorf("replay: exceeded step limit %d at input index %d", maxSteps, i)
		}

		evs, err := closeStalePrompt(svc, gameID, input.Names, in.Seat)
		if err != nil {
			return nil, err
		}
		all = append(all, evs...)
		if err := checkStrict(opts.Strict, evs); err != nil {
			return nil, err
		}

		out, err := svc.HandleAction(gameID, input.Names[in.Seat], in.Action, in.Data)
		if err != nil {
			return nil, &FailedStepError{Index: i, Seat: in.Seat, Action: in.Action, Err: err}
		}
		all = append(all, out...)
		if err := checkStrict(opts.Strict, out); err != nil {
			return nil, &FailedStepError{Index: i, Seat: in.Seat, Action: in.Action, Err: err}
		}
		steps++
	}

	// Drain any trailing prompt or round-advance window the log left open
	// (e.g. the final round ends and every human must still confirm).
	finalEvs, err := drainTrailingWindows(svc, gameID, input.Names)
	if err != nil {
		return nil, err
	}
	all = append(all, finalEvs...)

	final, err := svc.GetGameState(gameID)
	if err != nil {
		return nil, fmt.Errorf("replay: final state: %w", err)
	}

	return &RunResult{GameID: gameID, StepsPlayed: steps, FinalState: final, AllEvents: all}, nil
}

// closeStalePrompt auto-passes every seat on the currently open prompt
// that isn't actingSeat, so the next recorded action can be applied
// against a prompt it actually addresses (or against no prompt at all).
func closeStalePrompt(svc *service.Service, gameID string, names [4]string, actingSeat int) ([]events.Event, error) {
	var out []events.Event
	for {
		g, err := svc.GetGameState(gameID)
		if err != nil {
			return out, err
		}
		prompt := g.Round.PendingPrompt
		if prompt == nil {
			return out, nil
		}
		if containsSeat(prompt.PendingSeats, actingSeat) {
			return out, nil
		}
		seat := prompt.PendingSeats[0]
		evs, err := svc.HandleAction(gameID, names[seat], service.ActionPass, service.ActionData{})
		if err != nil {
			return out, fmt.Errorf("replay: auto-pass seat %d: %w", seat, err)
		}
		out = append(out, evs...)
	}
}

// drainTrailingWindows auto-passes any prompt and auto-confirms any
// round-advance window still open once the recorded action stream is
// exhausted, so Run returns a settled final state.
func drainTrailingWindows(svc *service.Service, gameID string, names [4]string) ([]events.Event, error) {
	var out []events.Event
	for {
		g, err := svc.GetGameState(gameID)
		if err != nil {
			return out, err
		}
		if prompt := g.Round.PendingPrompt; prompt != nil && len(prompt.PendingSeats) > 0 {
			seat := prompt.PendingSeats[0]
			evs, err := svc.HandleAction(gameID, names[seat], service.ActionPass, service.ActionData{})
			if err != nil {
				return out, fmt.Errorf("replay: draining pass seat %d: %w", seat, err)
			}
			out = append(out, evs...)
			continue
		}
		pending, err := svc.IsRoundAdvancePending(gameID)
		if err != nil {
			return out, err
		}
		if !pending {
			return out, nil
		}
		for _, name := range names {
			evs, _ := svc.HandleAction(gameID, name, service.ActionConfirmRound, service.ActionData{})
			out = append(out, evs...)
		}
		stillPending, err := svc.IsRoundAdvancePending(gameID)
		if err != nil {
			return out, err
		}
		if stillPending {
			return out, fmt.Errorf("replay: round-advance window did not resolve after confirming every seat")
		}
	}
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

// checkStrict converts any Error event into a failure when strict is set.
func checkStrict(strict bool, evs []events.Event) error {
	if !strict {
		return nil
	}
	for _, e := range evs {
		if errEv, ok := e.(events.Error); ok {
			return fmt.Errorf("replay: strict mode: %s: %s", errEv.Code, errEv.Message)
		}
	}
	return nil
}
