package interp

import "fmt"

// FutureMember reads one of the built-in members the §6 Future/async
// surface exposes directly on a Future value: `.is_ready` and `.value`.
// `.value` is defined only after the future has resolved (the evaluator is
// expected to have awaited it first); reading it earlier is a programmer
// error surfaced as a plain Go error, not one of the typed diagnostics,
// since the language itself has no syntax that reaches here without an
// await somewhere in the chain.
func FutureMember(f *FutureValue, name string) (Value, error) {
	switch name {
	case "is_ready":
		return &BoolValue{Val: f.IsReady()}, nil
	case "value":
		if !f.Resolved {
			return nil, fmt.Errorf("future value read before it resolved")
		}
		return f.Value, nil
	default:
		return nil, fmt.Errorf("no such Future member: %s", name)
	}
}
