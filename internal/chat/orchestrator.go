package chat

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/diogo/goalchat/internal/errors"
)

// Fetcher sends one message to the assistant and returns its reply
type Fetcher interface {
	FetchReply(ctx context.Context, message string) (string, error)
}

// Result is the outcome of dispatching a Ticket
type Result struct {
	Ticket  Ticket
	Reply   string
	Err     error
	Elapsed time.Duration
}

// Orchestrator binds a Conversation to a Fetcher
type Orchestrator struct {
	conv    *Conversation
	fetcher Fetcher
	logger  *zap.Logger
}

// OrchestratorOption configures an Orchestrator
type OrchestratorOption func(*Orchestrator)

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConversation uses conv instead of a fresh conversation
func WithConversation(conv *Conversation) OrchestratorOption {
	return func(o *Orchestrator) {
		if conv != nil {
			o.conv = conv
		}
	}
}

// NewOrchestrator creates an Orchestrator sending through fetcher
func NewOrchestrator(fetcher Fetcher, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		conv:    NewConversation(),
		fetcher: fetcher,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Conversation returns the owned conversation state
func (o *Orchestrator) Conversation() *Conversation {
	return o.conv
}

// Submit performs the Idle -> Sending transition without any network work
func (o *Orchestrator) Submit(input string) (Ticket, []Intent, error) {
	ticket, intents, err := o.conv.Begin(input)
	if err != nil {
		if errors.Is(err, apperrors.ErrBusy) {
			o.logger.Debug("submission rejected while sending")
		}
		return Ticket{}, nil, err
	}
	o.logger.Debug("submission accepted",
		zap.Uint64("generation", ticket.Generation),
		zap.Int("length", len(ticket.Input)),
	)
	return ticket, intents, nil
}

// Dispatch requests the reply for t. It does not touch the conversation and
// may run on any goroutine.
func (o *Orchestrator) Dispatch(ctx context.Context, t Ticket) Result {
	start := time.Now()
	reply, err := o.fetcher.FetchReply(ctx, t.Input)
	return Result{
		Ticket:  t,
		Reply:   reply,
		Err:     err,
		Elapsed: time.Since(start),
	}
}

// Resolve applies a dispatched Result. Failures are logged and rendered as
// the fixed error reply; they are never returned.
func (o *Orchestrator) Resolve(r Result) []Intent {
	if r.Err != nil {
		o.logFailure(r)
		intents, ok := o.conv.Fail(r.Ticket, r.Err)
		if !ok {
			o.logger.Debug("dropped stale failure", zap.Uint64("generation", r.Ticket.Generation))
		}
		return intents
	}

	intents, ok := o.conv.Complete(r.Ticket, r.Reply)
	if !ok {
		o.logger.Debug("dropped stale reply", zap.Uint64("generation", r.Ticket.Generation))
		return nil
	}
	o.logger.Info("reply received",
		zap.Duration("elapsed", r.Elapsed),
		zap.Int("length", len(r.Reply)),
	)
	return intents
}

func (o *Orchestrator) logFailure(r Result) {
	fields := []zap.Field{
		zap.Error(r.Err),
		zap.Duration("elapsed", r.Elapsed),
	}
	if endpoint := apperrors.GetEndpoint(r.Err); endpoint != "" {
		fields = append(fields, zap.String("endpoint", endpoint))
	}
	if status := apperrors.GetHTTPStatus(r.Err); status != 0 {
		fields = append(fields, zap.Int("status", status))
	}
	if body := apperrors.GetResponseBody(r.Err); body != "" {
		fields = append(fields, zap.String("body", body))
	}
	o.logger.Error("reply request failed", fields...)
}

// Send runs the whole lifecycle synchronously and returns every intent in
// order. Only ErrEmptyInput and ErrBusy are returned.
func (o *Orchestrator) Send(ctx context.Context, input string) ([]Intent, error) {
	ticket, intents, err := o.Submit(input)
	if err != nil {
		return nil, err
	}
	return append(intents, o.Resolve(o.Dispatch(ctx, ticket))...), nil
}

// Reset clears the conversation
func (o *Orchestrator) Reset() []Intent {
	o.logger.Debug("conversation reset", zap.Int("messages", o.conv.Len()))
	return o.conv.Reset()
}
