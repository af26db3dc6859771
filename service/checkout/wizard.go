// Package checkout implements the three-step checkout wizard over a cart.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"shopzone.GO/core/apperr"
	"shopzone.GO/service/cart"
)

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	ErrSubmissionInFlight = apperr.Conflict("checkout.place_order", "order submission already in progress")
	ErrWrongStep          = apperr.Invalid("checkout", "step", "action not allowed at the current step")
	ErrEmptyCart          = apperr.Invalid("checkout.place_order", "cart", "cart is empty")
)

// Submission is what an OrderPlacer receives.
type Submission struct {
	SessionID string
	Shipping  ShippingForm
	Payment   Payment
	Items     []cart.LineItem
	Breakdown Breakdown
}

// Receipt confirms a placed order.
type Receipt struct {
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Email       string          `json:"email"`
	Total       decimal.Decimal `json:"total"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// OrderPlacer completes an order. Errors should carry an apperr kind.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, sub Submission) (Receipt, error)
}

// Outcome is the result delivered by PlaceOrderAsync.
type Outcome struct {
	Receipt Receipt
	Err     error
}

// Wizard is the checkout state of one session.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	shipping   ShippingForm
	payment    Payment
	submitting bool
	receipt    *Receipt

	sessionID string
	cart      *cart.Store
	placer    OrderPlacer
	rates     Rates
	now       func() time.Time
}

func NewWizard(sessionID string, c *cart.Store, placer OrderPlacer, rates Rates) *Wizard {
	return &Wizard{
		step:      StepShipping,
		sessionID: sessionID,
		cart:      c,
		placer:    placer,
		rates:     rates,
		now:       time.Now,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Receipt is set once the order was placed.
func (w *Wizard) Receipt() (Receipt, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.receipt == nil {
		return Receipt{}, false
	}
	return *w.receipt, true
}

// guard checks that no submission runs and the wizard is at step.
func (w *Wizard) guard(step Step) error {
	if w.submitting {
		return ErrSubmissionInFlight
	}
	if w.step != step {
		return ErrWrongStep
	}
	return nil
}

// SubmitShipping validates f and advances to payment.
func (w *Wizard) SubmitShipping(f ShippingForm) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guard(StepShipping); err != nil {
		return err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}
	w.shipping = f
	w.step = StepPayment
	return nil
}

// SubmitPayment validates the selected method and advances to review.
func (w *Wizard) SubmitPayment(f PaymentForm) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guard(StepPayment); err != nil {
		return err
	}
	p, err := f.Accept(w.now())
	if err != nil {
		return err
	}
	w.payment = p
	w.step = StepReview
	return nil
}

// Back moves one step back. It is a no-op on the shipping step.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return ErrSubmissionInFlight
	}
	switch w.step {
	case StepPayment:
		w.step = StepShipping
	case StepReview:
		w.step = StepPayment
	case StepSubmitted:
		return ErrWrongStep
	}
	return nil
}

// Breakdown prices the live cart.
func (w *Wizard) Breakdown() Breakdown {
	return Compute(w.cart.Items(), w.rates)
}

// PlaceOrder submits the order from the review step. On success the
// submitted lines leave the cart and the wizard is submitted; on failure it stays on review
// with the cart intact.
func (w *Wizard) PlaceOrder(ctx context.Context) (Receipt, error) {
	sub, err := w.begin(ctx)
	if err != nil {
		return Receipt{}, err
	}
	rec, err := w.placer.PlaceOrder(ctx, sub)
	return w.finish(sub, rec, err)
}

// PlaceOrderAsync starts PlaceOrder and delivers its outcome on the
// returned channel. Step and cart checks happen before it returns, so a
// second call made right after gets ErrSubmissionInFlight.
func (w *Wizard) PlaceOrderAsync(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)
	sub, err := w.begin(ctx)
	if err != nil {
		out <- Outcome{Err: err}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		rec, err := w.placer.PlaceOrder(ctx, sub)
		rec, err = w.finish(sub, rec, err)
		out <- Outcome{Receipt: rec, Err: err}
	}()
	return out
}

func (w *Wizard) begin(ctx context.Context) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guard(StepReview); err != nil {
		return Submission{}, err
	}
	items := w.cart.Items()
	if len(items) == 0 {
		return Submission{}, ErrEmptyCart
	}
	w.submitting = true
	return Submission{
		SessionID: w.sessionID,
		Shipping:  w.shipping,
		Payment:   w.payment,
		Items:     items,
		Breakdown: Compute(items, w.rates),
	}, nil
}

func (w *Wizard) finish(sub Submission, rec Receipt, err error) (Receipt, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return Receipt{}, err
	}
	w.cart.Subtract(sub.Items)
	w.step = StepSubmitted
	w.receipt = &rec
	return rec, nil
}

// View is a read-only picture of the wizard for rendering.
type View struct {
	Step       string          `json:"step"`
	StepNumber int             `json:"stepNumber"`
	Shipping   ShippingForm    `json:"shipping"`
	Payment    Payment         `json:"payment"`
	Submitting bool            `json:"submitting"`
	Items      []cart.LineItem `json:"items"`
	Breakdown  Display         `json:"breakdown"`
	Receipt    *Receipt        `json:"receipt,omitempty"`
}

func (w *Wizard) View() View {
	items := w.cart.Items()
	w.mu.Lock()
	defer w.mu.Unlock()
	v := View{
		Step:       w.step.String(),
		StepNumber: int(w.step),
		Shipping:   w.shipping,
		Payment:    w.payment,
		Submitting: w.submitting,
		Items:      items,
		Breakdown:  Compute(items, w.rates).Display(),
	}
	if w.receipt != nil {
		r := *w.receipt
		v.Receipt = &r
	}
	return v
}
