// Package form holds the state of one admin user creation form and the
// transitions between field edits, submission and the confirmation popup.
package form

import (
	"context"
	"fmt"

	"admin-form/internal/model"
)

// Sink receives a validated submission.
type Sink interface {
	Accept(ctx context.Context, data model.FormData) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, data model.FormData) error

func (f SinkFunc) Accept(ctx context.Context, data model.FormData) error { return f(ctx, data) }

// ValidateFunc returns the failing fields of data.
type ValidateFunc func(data model.FormData) model.ErrorMap

// State is everything a form instance remembers between events.
type State struct {
	Data   model.FormData `json:"data"`
	Errors model.ErrorMap `json:"errors"`
	Popup  PopupState     `json:"popup"`
}

// DefaultState is a freshly mounted form.
func DefaultState() State {
	return State{Data: model.DefaultFormData(), Errors: model.ErrorMap{}, Popup: PopupHidden}
}

// Form 單一表單實例；事件依序呼叫，不做同步保護
type Form struct {
	state    State
	validate ValidateFunc
	sink     Sink
}

// New returns a form in its default state.
func New(validate ValidateFunc, sink Sink) *Form {
	return Restore(DefaultState(), validate, sink)
}

// Restore returns a form continuing from a saved state.
func Restore(st State, validate ValidateFunc, sink Sink) *Form {
	if st.Errors == nil {
		st.Errors = model.ErrorMap{}
	}
	return &Form{state: st, validate: validate, sink: sink}
}

// State returns a copy of the current state.
func (f *Form) State() State {
	st := f.state
	st.Errors = f.state.Errors.Clone()
	return st
}

func (f *Form) Data() model.FormData { return f.state.Data }

func (f *Form) Errors() model.ErrorMap { return f.state.Errors.Clone() }

func (f *Form) PopupVisible() bool { return f.state.Popup.Visible() }

// Update applies one field change event. Errors are left as they are until the
// next submit.
func (f *Form) Update(field model.Field, value any) model.FormData {
	f.state.Data = f.state.Data.With(field, value)
	return f.state.Data
}

// Submit validates the current data. Failing fields are stored and returned
// with a nil error. On success the data goes to the sink, the popup is shown
// and the data is reset; the returned map is empty. A sink error leaves data
// and popup untouched.
func (f *Form) Submit(ctx context.Context) (model.ErrorMap, error) {
	errs := f.validate(f.state.Data)
	if errs == nil {
		errs = model.ErrorMap{}
	}
	f.state.Errors = errs
	if !errs.Valid() {
		return errs.Clone(), nil
	}
	if err := f.sink.Accept(ctx, f.state.Data); err != nil {
		return model.ErrorMap{}, fmt.Errorf("Submit: %w", err)
	}
	f.state.Popup = PopupShown
	f.state.Data = model.DefaultFormData()
	return model.ErrorMap{}, nil
}

// DismissPopup hides the confirmation. Nothing else changes.
func (f *Form) DismissPopup() {
	f.state.Popup = PopupHidden
}
