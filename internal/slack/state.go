package slack

import "strings"

// FormState is a defensive accessor over a view's round-tripped state values.
// Every lookup tolerates missing blocks, actions, or attributes by returning
// the zero value, so call sites never repeat nested nil checks.
type FormState struct {
	values map[string]map[string]ElementState
}

// NewFormState wraps the state values of an interaction payload.
func NewFormState(state ViewState) FormState {
	return FormState{values: state.Values}
}

func (f FormState) element(blockID, actionID string) (ElementState, bool) {
	block, ok := f.values[blockID]
	if !ok {
		return ElementState{}, false
	}
	el, ok := block[actionID]
	return el, ok
}

// Value returns a plain input's current text.
func (f FormState) Value(blockID, actionID string) string {
	el, _ := f.element(blockID, actionID)
	return el.Value
}

// SelectedOption returns the value of a select element's chosen option.
func (f FormState) SelectedOption(blockID, actionID string) string {
	el, ok := f.element(blockID, actionID)
	if !ok || el.SelectedOption == nil {
		return ""
	}
	return el.SelectedOption.Value
}

// SelectedDate returns a datepicker's chosen date (YYYY-MM-DD).
func (f FormState) SelectedDate(blockID, actionID string) string {
	el, _ := f.element(blockID, actionID)
	return el.SelectedDate
}

// ValueByBlockPrefix finds the first block whose id starts with prefix and
// returns the named action's text value. Used for blocks whose ids carry a
// varying refresh token.
func (f FormState) ValueByBlockPrefix(prefix, actionID string) string {
	for blockID, block := range f.values {
		if !strings.HasPrefix(blockID, prefix) {
			continue
		}
		if el, ok := block[actionID]; ok {
			return el.Value
		}
	}
	return ""
}
