package schemaprompt

import (
	"errors"

	"go.uber.org/zap"
)

// mergePresets makes every preset visible in result. Presets consumed during
// the walk are already there; unvisited ones are written (or appended at an
// end-of-sequence pointer). A preset that disagrees with a produced value, or
// whose location cannot be written, fails the generation.
func (w *walker) mergePresets(result any, presets *presetTable) (any, error) {
	for _, p := range presets.order {
		v, _ := presets.lookup(p)
		got, err := p.Get(result)
		switch {
		case err == nil:
			if !Equal(got, v) {
				return nil, &SetValueError{Pointer: p, Value: v, Reason: "Mismatch with existing value " + renderValue(got)}
			}
			continue
		case errors.Is(err, ErrEndOfSequence), errors.Is(err, ErrPointerNotFound):
		default:
			return nil, &SetValueError{Pointer: p, Value: v, Err: err}
		}
		updated, err := p.Set(result, v)
		if err != nil {
			return nil, &SetValueError{Pointer: p, Value: v, Err: err}
		}
		result = updated
		w.log.Debug("preset merged", zap.String("pointer", p.Display()))
	}
	return result, nil
}
