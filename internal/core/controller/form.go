// internal/core/controller/form.go
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stockline/stockline-go/internal/core/domain"
	"github.com/stockline/stockline-go/internal/core/ports"
)

// DefaultSuccessWindow is how long the success banner stays up before the
// editing surface auto-closes and the form resets.
const DefaultSuccessWindow = 2500 * time.Millisecond

// Error-map keys for failures that are not tied to a single field.
const (
	SubmitErrorKey  = "submit"
	LoadErrorKey    = "load"
	OptionsErrorKey = "options"
)

// FormConfig tunes a Form. Zero values fall back to defaults.
type FormConfig struct {
	// Refetch is dispatched exactly once after a successful submit,
	// normally bound to the companion collection's Refresh.
	Refetch func()
	// OnChange is invoked after every observable state change, outside
	// the controller's lock.
	OnChange func()
	// OnClosed is invoked when the success window elapses and the editing
	// surface should close.
	OnClosed      func()
	SuccessWindow time.Duration
	Logger        *slog.Logger
	// Loaders supplies the async option sources for picker fields,
	// keyed by the entity the picker selects.
	Loaders map[domain.Entity]ports.OptionLoader
}

// Form holds one entity's editable field set, keeps derived fields
// consistent through the entity's derivation table, and drives a
// create-or-update submission with the success/failure contract every
// screen shares.
type Form struct {
	spec          domain.FormSpec
	save          ports.SaveFunc
	refetch       func()
	onChange      func()
	onClosed      func()
	successWindow time.Duration
	logger        *slog.Logger
	loaders       map[domain.Entity]ports.OptionLoader

	mu           sync.Mutex
	state        *domain.FormState
	errors       map[string]string
	submitting   bool
	success      bool
	successTimer *time.Timer
	cache        *OptionCache
	closed       bool
}

// NewForm binds a form controller to an entity form table and a save
// function (create or update, chosen by the caller).
func NewForm(spec domain.FormSpec, save ports.SaveFunc, cfg FormConfig) *Form {
	if cfg.SuccessWindow <= 0 {
		cfg.SuccessWindow = DefaultSuccessWindow
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Form{
		spec:          spec,
		save:          save,
		refetch:       cfg.Refetch,
		onChange:      cfg.OnChange,
		onClosed:      cfg.OnClosed,
		successWindow: cfg.SuccessWindow,
		logger:        cfg.Logger.With(slog.String("controller", "form"), slog.String("entity", string(spec.Entity))),
		loaders:       cfg.Loaders,
		state:         spec.NewState(),
		errors:        make(map[string]string),
		cache:         NewOptionCache(),
	}
}

// SetField normalizes and stores one edit, fires the derivation table once
// in the direction picked by the edited field, and clears any standing
// validation error for that field.
func (f *Form) SetField(name string, raw any) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.Set(name, raw)
	delete(f.errors, name)
	f.mu.Unlock()
	f.notify()
}

// Value returns the stored value of one field.
func (f *Form) Value(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Get(name)
}

// State returns an independent copy of the whole form state, for reading
// derived outputs such as order totals.
func (f *Form) State() *domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// Errors returns a copy of the current field->message error mapping.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// IsSubmitting reports whether a save call is in flight.
func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// ShowSuccess reports whether the transient success banner is up.
func (f *Form) ShowSuccess() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

// Validate applies the entity's rule table and stores the result. The
// returned mapping is empty iff the form is valid.
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	errs := f.spec.Validate(f.state)
	f.errors = errs
	f.mu.Unlock()
	f.notify()
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}

// Submit validates and, if valid, runs the bound save function. On success
// it dispatches the collection refetch exactly once and raises the success
// banner for the configured window, after which the editing surface closes
// and the form resets to defaults. On failure the form stays open and
// populated with a single submit error. isSubmitting clears on both paths.
// The return value reports whether the save succeeded.
func (f *Form) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.closed || f.submitting {
		f.mu.Unlock()
		return false
	}
	if errs := f.spec.Validate(f.state); len(errs) > 0 {
		f.errors = errs
		f.mu.Unlock()
		f.notify()
		return false
	}
	f.submitting = true
	delete(f.errors, SubmitErrorKey)
	payload := f.state.Clone()
	f.mu.Unlock()
	f.notify()

	err := f.save(ctx, payload)

	f.mu.Lock()
	f.submitting = false
	if f.closed {
		f.mu.Unlock()
		return false
	}
	if err != nil {
		f.errors[SubmitErrorKey] = ports.SaveFailedMessage(f.spec.Entity)
		f.logger.ErrorContext(ctx, "submit failed",
			slog.String("error", err.Error()))
		f.mu.Unlock()
		f.notify()
		return false
	}
	f.success = true
	f.successTimer = time.AfterFunc(f.successWindow, f.finishSuccess)
	refetch := f.refetch
	f.logger.InfoContext(ctx, "submit succeeded")
	f.mu.Unlock()
	if refetch != nil {
		refetch()
	}
	f.notify()
	return true
}

// finishSuccess runs when the success window elapses: banner down, form
// reset to defaults, editing surface closed.
func (f *Form) finishSuccess() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.success = false
	f.resetLocked()
	onClosed := f.onClosed
	f.mu.Unlock()
	f.notify()
	if onClosed != nil {
		onClosed()
	}
}

// Hydrate installs persisted values without firing derivations; stored
// fields already agree with each other.
func (f *Form) Hydrate(values map[string]any) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	for name, v := range values {
		f.state.Put(name, v)
	}
	f.mu.Unlock()
	f.notify()
}

// HydrateForEdit loads an entity's current values (typically via getById)
// into the form. A load failure is surfaced inline and leaves the form
// usable; nothing is thrown further up.
func (f *Form) HydrateForEdit(ctx context.Context, load func(ctx context.Context) (map[string]any, error)) error {
	values, err := load(ctx)
	if err != nil {
		f.mu.Lock()
		if !f.closed {
			f.errors[LoadErrorKey] = ports.LoadFailedMessage(f.spec.Entity)
		}
		f.mu.Unlock()
		f.notify()
		f.logger.ErrorContext(ctx, "hydrate failed", slog.String("error", err.Error()))
		return fmt.Errorf("hydrate %s form: %w", f.spec.Entity, err)
	}
	f.Hydrate(values)
	return nil
}

// LoadOptions pages picker options for one entity through the bound
// loader. Every returned option is merged into the form's option cache so
// labels can be recovered later for ids the form already holds. A load
// failure yields an empty page and an inline message; it never blocks the
// rest of the form.
func (f *Form) LoadOptions(ctx context.Context, entity domain.Entity, search string, page int) (ports.OptionPage, error) {
	f.mu.Lock()
	loader := f.loaders[entity]
	f.mu.Unlock()
	if loader == nil {
		return ports.OptionPage{}, fmt.Errorf("no option loader bound for %s", entity)
	}
	if page < 1 {
		page = 1
	}

	res, err := loader(ctx, search, page)
	if err != nil {
		f.mu.Lock()
		if !f.closed {
			f.errors[OptionsErrorKey] = fmt.Sprintf("Failed to load %s options.", entity.Label())
		}
		f.mu.Unlock()
		f.notify()
		f.logger.WarnContext(ctx, "option load failed",
			slog.String("options_entity", string(entity)),
			slog.String("error", err.Error()))
		return ports.OptionPage{}, err
	}

	f.mu.Lock()
	if !f.closed {
		delete(f.errors, OptionsErrorKey)
		f.cache.Put(res.Options...)
	}
	f.mu.Unlock()
	f.notify()
	return res, nil
}

// OptionLabel recovers the display label for an option id from the
// session cache, e.g. when editing an order whose customer id is known
// but whose label must be re-rendered.
func (f *Form) OptionLabel(value string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache.Label(value)
}

// Reset clears the form back to defaults, drops all errors, cancels any
// pending success timer and discards the option cache.
func (f *Form) Reset() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.success = false
	f.resetLocked()
	f.mu.Unlock()
	f.notify()
}

// Close tears the form down; pending timers are cancelled and no state
// updates can land afterwards.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.successTimer != nil {
		f.successTimer.Stop()
	}
	f.mu.Unlock()
}

// resetLocked resets state, errors and cache. Caller holds mu.
func (f *Form) resetLocked() {
	if f.successTimer != nil {
		f.successTimer.Stop()
		f.successTimer = nil
	}
	f.state = f.spec.NewState()
	f.errors = make(map[string]string)
	f.cache = NewOptionCache()
}

func (f *Form) notify() {
	if f.onChange != nil {
		f.onChange()
	}
}
