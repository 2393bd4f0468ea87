package transition

import "github.com/anggasct/fluo"

// Check runs one status change through def. States are statuses and each
// edge fires on the event named after its target status. Any rejection,
// including an unknown from status, becomes an *Error.
func Check[S ~string](def fluo.MachineDefinition, entity string, from, to S) error {
	m := def.CreateInstance()
	if err := m.Start(); err != nil {
		return New(entity, from, to)
	}
	if err := m.SetState(string(from)); err != nil {
		return New(entity, from, to)
	}
	if res := m.HandleEvent(string(to), nil); res == nil || !res.Success() {
		return New(entity, from, to)
	}
	return nil
}
