package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"paynapple-backend/models"
)

// DefaultDemoDelay is how long the simulated flow waits before fabricating
// its success outcome.
const DefaultDemoDelay = 1500 * time.Millisecond

// Lifecycle is the slice of the invoice lifecycle the orchestrator needs:
// completing a simulated onboarding opens the paid gate.
type Lifecycle interface {
	MarkAccountPaid(ctx context.Context) error
}

// Notifier receives user-facing messages. The presentation around them
// (toasts, etc.) lives outside this core.
type Notifier interface {
	Notify(message, level string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(message, level string)

func (f NotifierFunc) Notify(message, level string) { f(message, level) }

// Schedule arms a delayed task and returns its cancel handle. Production
// uses time.AfterFunc; tests inject an immediate variant.
type Schedule func(d time.Duration, fn func()) (cancel func())

func afterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Outcome is what a checkout initiation resolves to. Simulated outcomes are
// always labeled so they can never pass for a real payment confirmation.
type Outcome struct {
	RedirectURL string `json:"redirectUrl,omitempty"`
	Simulated   bool   `json:"simulated"`
	Message     string `json:"message"`
}

// Orchestrator requests hosted checkout sessions and degrades to the demo
// flow when the processor is unreachable. Initiation is fire-and-forget:
// once the demo timer is armed nothing cancels it. Concurrent initiations
// for the same invoice are deduped into one attempt.
type Orchestrator struct {
	sessions  SessionClient
	lifecycle Lifecycle
	notify    Notifier

	// Schedule and Delay drive the demo timer; overridable for tests.
	Schedule Schedule
	Delay    time.Duration

	sf singleflight.Group
}

func NewOrchestrator(sessions SessionClient, lifecycle Lifecycle, notify Notifier) *Orchestrator {
	return &Orchestrator{
		sessions:  sessions,
		lifecycle: lifecycle,
		notify:    notify,
		Schedule:  afterFunc,
		Delay:     DefaultDemoDelay,
	}
}

// Initiate creates a checkout session for the request, or starts the demo
// flow when the session backend fails. It never reports a failure: every
// path resolves to an Outcome.
func (o *Orchestrator) Initiate(ctx context.Context, req models.CheckoutRequest) Outcome {
	key := "checkout_onboarding"
	if req.Kind == models.CheckoutInvoicePayment {
		key = "checkout_invoice_" + req.InvoiceId
	}

	// Dedupe concurrent double-fires for the same invoice: late callers
	// receive the first call's outcome.
	v, _, _ := o.sf.Do(key, func() (interface{}, error) {
		return o.initiate(ctx, req), nil
	})
	return v.(Outcome)
}

func (o *Orchestrator) initiate(ctx context.Context, req models.CheckoutRequest) Outcome {
	sess, err := o.sessions.CreateSession(ctx, req)
	if err == nil {
		msg := "Checkout session ready"
		if req.Kind == models.CheckoutInvoicePayment {
			msg = fmt.Sprintf("Payment link sent for %s", req.ClientName)
		}
		o.notify.Notify(msg, "success")
		return Outcome{RedirectURL: sess.URL, Message: msg}
	}

	// Any failure of the real path starts the simulated flow instead of
	// surfacing an error.
	log.Printf("checkout: session backend unavailable, entering demo flow: %v", err)
	return o.simulate(req)
}

func (o *Orchestrator) simulate(req models.CheckoutRequest) Outcome {
	var started, completed string
	switch req.Kind {
	case models.CheckoutInvoicePayment:
		started = fmt.Sprintf("Demo: creating payment link for %s...", req.ClientName)
		completed = "Demo payment link created! (would normally open checkout)"
	default:
		started = "Demo: processing onboarding payment..."
		completed = "Demo payment complete! Welcome aboard."
	}
	o.notify.Notify(started, "success")

	o.Schedule(o.Delay, func() {
		if req.Kind == models.CheckoutOnboarding {
			// The simulated onboarding completes the same way a real
			// post-redirect confirmation would. Invoice payments do not
			// auto-mark the invoice paid; that stays an explicit action.
			if err := o.lifecycle.MarkAccountPaid(context.Background()); err != nil {
				log.Printf("checkout: demo onboarding completion: %v", err)
				return
			}
		}
		o.notify.Notify(completed, "success")
	})

	return Outcome{Simulated: true, Message: started}
}
