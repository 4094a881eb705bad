// internal/core/controller/form_test.go
package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-go/internal/core/controller"
	"github.com/stockline/stockline-go/internal/core/domain"
	"github.com/stockline/stockline-go/internal/core/ports"
)

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// recordingSaver is a controllable SaveFunc that records every call.
type recordingSaver struct {
	mu     sync.Mutex
	calls  []*domain.FormState
	result error
}

func (r *recordingSaver) save(_ context.Context, state *domain.FormState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, state)
	return r.result
}

func (r *recordingSaver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestForm_SetFieldAppliesDerivations(t *testing.T) {
	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{})
	defer f.Close()

	f.SetField("quantity", 3)
	f.SetField("unitPrice", "10")

	state := f.State()
	assert.Equal(t, "30", state.Decimal("totalPrice").String())

	f.SetField("totalPaid", "50")
	assert.Equal(t, "30", f.State().Decimal("totalPaid").String(), "paid clamps to total")
}

func TestForm_SetFieldClearsFieldError(t *testing.T) {
	f := controller.NewForm(domain.CustomerForm(), (&recordingSaver{}).save, controller.FormConfig{})
	defer f.Close()

	errs := f.Validate()
	require.Equal(t, "Name is required", errs["name"])

	f.SetField("name", "Ayşe Kaya")
	_, present := f.Errors()["name"]
	assert.False(t, present, "editing a field clears its validation error")
}

func TestForm_SubmitAbortsOnValidationFailure(t *testing.T) {
	saver := &recordingSaver{}
	refetches := 0
	f := controller.NewForm(domain.CustomerForm(), saver.save, controller.FormConfig{
		Refetch: func() { refetches++ },
	})
	defer f.Close()

	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, 0, saver.callCount(), "invalid form never reaches the network")
	assert.Equal(t, 0, refetches)
	assert.False(t, f.IsSubmitting())
	assert.Equal(t, "Name is required", f.Errors()["name"])
}

func TestForm_SubmitSuccessLifecycle(t *testing.T) {
	saver := &recordingSaver{}
	var mu sync.Mutex
	refetches := 0
	closed := false

	f := controller.NewForm(domain.CustomerForm(), saver.save, controller.FormConfig{
		SuccessWindow: 40 * time.Millisecond,
		Refetch: func() {
			mu.Lock()
			refetches++
			mu.Unlock()
		},
		OnClosed: func() {
			mu.Lock()
			closed = true
			mu.Unlock()
		},
	})
	defer f.Close()

	f.SetField("name", "Ayşe Kaya")
	ok := f.Submit(context.Background())

	require.True(t, ok)
	assert.Equal(t, 1, saver.callCount())
	assert.True(t, f.ShowSuccess())
	assert.False(t, f.IsSubmitting())

	mu.Lock()
	assert.Equal(t, 1, refetches, "collection refetch dispatched exactly once")
	mu.Unlock()

	// After the window the banner drops, the surface closes and the form
	// resets to defaults.
	require.Eventually(t, func() bool {
		return !f.ShowSuccess()
	}, time.Second, 2*time.Millisecond)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return closed
	}, time.Second, 2*time.Millisecond)
	assert.Equal(t, "", f.State().String("name"))

	mu.Lock()
	assert.Equal(t, 1, refetches, "auto-close must not refetch again")
	mu.Unlock()
}

func TestForm_SubmitFailureKeepsFormOpen(t *testing.T) {
	saver := &recordingSaver{result: errors.New("boom")}
	refetches := 0
	f := controller.NewForm(domain.CustomerForm(), saver.save, controller.FormConfig{
		Refetch: func() { refetches++ },
	})
	defer f.Close()

	f.SetField("name", "Ayşe Kaya")
	ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.False(t, f.IsSubmitting(), "isSubmitting clears on the failure path too")
	assert.False(t, f.ShowSuccess())
	assert.Equal(t, 0, refetches)
	assert.Equal(t, "Failed to save customer. Please try again.", f.Errors()[controller.SubmitErrorKey])
	assert.Equal(t, "Ayşe Kaya", f.State().String("name"), "entered data is retained for correction")

	// A retry after the backend recovers succeeds and clears the error.
	saver.mu.Lock()
	saver.result = nil
	saver.mu.Unlock()
	ok = f.Submit(context.Background())
	assert.True(t, ok)
	_, present := f.Errors()[controller.SubmitErrorKey]
	assert.False(t, present)
}

func TestForm_LoadOptionsMergesCache(t *testing.T) {
	loader := func(_ context.Context, search string, page int) (ports.OptionPage, error) {
		return ports.OptionPage{
			Options: []domain.OptionRef{
				{Value: "c1", Label: "Ayşe"},
				{Value: "c2", Label: "Mehmet"},
			},
			HasMore:  true,
			NextPage: page + 1,
		}, nil
	}

	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{
		Loaders: map[domain.Entity]ports.OptionLoader{
			domain.EntityCustomer: loader,
		},
	})
	defer f.Close()

	page, err := f.LoadOptions(context.Background(), domain.EntityCustomer, "a", 0)
	require.NoError(t, err)
	assert.Len(t, page.Options, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, 2, page.NextPage)

	// Labels are recoverable for ids the form already holds, e.g. when
	// editing an existing order.
	label, ok := f.OptionLabel("c2")
	assert.True(t, ok)
	assert.Equal(t, "Mehmet", label)
}

func TestForm_LoadOptionsFailureIsNonBlocking(t *testing.T) {
	loader := func(_ context.Context, _ string, _ int) (ports.OptionPage, error) {
		return ports.OptionPage{}, errors.New("timeout")
	}

	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{
		Loaders: map[domain.Entity]ports.OptionLoader{
			domain.EntityCustomer: loader,
		},
	})
	defer f.Close()

	page, err := f.LoadOptions(context.Background(), domain.EntityCustomer, "", 1)
	assert.Error(t, err)
	assert.Empty(t, page.Options)
	assert.NotEmpty(t, f.Errors()[controller.OptionsErrorKey])

	// The rest of the form is unaffected.
	f.SetField("quantity", 2)
	f.SetField("unitPrice", "5")
	assert.Equal(t, "10", f.State().Decimal("totalPrice").String())
}

func TestForm_LoadOptionsWithoutLoader(t *testing.T) {
	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{})
	defer f.Close()

	_, err := f.LoadOptions(context.Background(), domain.EntitySupplier, "", 1)
	assert.Error(t, err)
}

func TestForm_HydrateForEdit(t *testing.T) {
	order := &domain.Order{
		Quantity:  4,
		UnitPrice: mustDec("5"),
	}
	order.TotalPrice = mustDec("20")
	order.TotalPaid = mustDec("12")

	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{})
	defer f.Close()

	err := f.HydrateForEdit(context.Background(), func(_ context.Context) (map[string]any, error) {
		return order.FormValues(), nil
	})
	require.NoError(t, err)

	state := f.State()
	assert.Equal(t, 4, state.Int("quantity"))
	assert.Equal(t, "20", state.Decimal("totalPrice").String())
	assert.Equal(t, "12", state.Decimal("totalPaid").String())
}

func TestForm_HydrateForEditFailureIsInline(t *testing.T) {
	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{})
	defer f.Close()

	err := f.HydrateForEdit(context.Background(), func(_ context.Context) (map[string]any, error) {
		return nil, errors.New("gone")
	})
	assert.Error(t, err)
	assert.Equal(t, "Failed to load orders. Please try again.", f.Errors()[controller.LoadErrorKey])
}

func TestForm_ResetDiscardsStateErrorsAndCache(t *testing.T) {
	loader := func(_ context.Context, _ string, page int) (ports.OptionPage, error) {
		return ports.OptionPage{Options: []domain.OptionRef{{Value: "c1", Label: "Ayşe"}}}, nil
	}
	f := controller.NewForm(domain.OrderForm(), (&recordingSaver{}).save, controller.FormConfig{
		Loaders: map[domain.Entity]ports.OptionLoader{domain.EntityCustomer: loader},
	})
	defer f.Close()

	f.SetField("quantity", 9)
	f.Validate()
	_, err := f.LoadOptions(context.Background(), domain.EntityCustomer, "", 1)
	require.NoError(t, err)

	f.Reset()

	assert.Equal(t, 1, f.State().Int("quantity"), "back to defaults")
	assert.Empty(t, f.Errors())
	_, ok := f.OptionLabel("c1")
	assert.False(t, ok, "option cache is discarded on reset")
}

func TestForm_CloseCancelsSuccessTimer(t *testing.T) {
	var mu sync.Mutex
	closedCalls := 0
	f := controller.NewForm(domain.CustomerForm(), (&recordingSaver{}).save, controller.FormConfig{
		SuccessWindow: 30 * time.Millisecond,
		OnClosed: func() {
			mu.Lock()
			closedCalls++
			mu.Unlock()
		},
	})

	f.SetField("name", "Ayşe Kaya")
	require.True(t, f.Submit(context.Background()))
	f.Close()

	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 0, closedCalls, "no callbacks after teardown")
	mu.Unlock()
}

func TestForm_DoubleSubmitIsIgnoredWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	save := func(_ context.Context, _ *domain.FormState) error {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return nil
	}

	f := controller.NewForm(domain.CustomerForm(), save, controller.FormConfig{
		SuccessWindow: 10 * time.Millisecond,
	})
	defer f.Close()
	f.SetField("name", "Ayşe Kaya")

	go f.Submit(context.Background())
	<-started
	assert.False(t, f.Submit(context.Background()), "second submit while in flight is a no-op")
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1 && !f.IsSubmitting()
	}, time.Second, 2*time.Millisecond)
}
