// Package bot turns chat messages into glossary operations. It owns
// command parsing, length validation, per-user rate limiting, and the
// mapping of outcomes to user-facing responses; the transport that carries
// messages in and out lives in the server package.
package bot

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"explbot/config"
	"explbot/errors"
	"explbot/glossary"
)

// MsgRateLimited is returned when a user submits commands faster than the
// configured rate allows.
const MsgRateLimited = "Too many commands, try again in a moment"

// Handler dispatches chat commands against the glossary.
type Handler struct {
	store  *glossary.Store
	query  *glossary.Query
	logger *zap.SugaredLogger

	// Per-user token buckets. Entries are created on first use and kept
	// for the process lifetime; user populations are small.
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHandler creates a command handler.
func NewHandler(store *glossary.Store, query *glossary.Query, rateCfg config.RateConfig, logger *zap.SugaredLogger) *Handler {
	perMinute := rateCfg.CommandsPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	burst := rateCfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Handler{
		store:    store,
		query:    query,
		logger:   logger,
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handle processes one chat message from the given user and produces
// exactly one outcome: a response (success, report, or fixed validation
// message) or an error. Errors are reserved for storage failures and
// messages that are not glossary commands at all.
func (h *Handler) Handle(ctx context.Context, userID, text string) (*Response, error) {
	cmd := commandWord(text)

	switch cmd {
	case CmdAdd, CmdExpl:
		// recognized
	default:
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "unknown command %q", cmd)
	}

	if !h.allow(userID) {
		if h.logger != nil {
			h.logger.Warnw("Rate limited", "user", userID, "command", cmd)
		}
		return textResponse(MsgRateLimited), nil
	}

	switch cmd {
	case CmdAdd:
		return h.handleAdd(ctx, userID, text)
	default:
		return h.handleExpl(ctx, text)
	}
}

// handleAdd implements `!add <term> <explanation>`.
func (h *Handler) handleAdd(ctx context.Context, userID, text string) (*Response, error) {
	parts := splitArgs(text, 3)
	if len(parts) != 3 {
		return textResponse(UsageAdd), nil
	}
	term, explanation := parts[1], parts[2]

	// Validation happens before any storage access; a rejected submission
	// must leave the store untouched
	if !glossary.ValidTermLength(term) {
		return textResponse(glossary.MsgTermTooLong), nil
	}
	if !glossary.ValidExplanationLength(explanation) {
		return textResponse(glossary.MsgExplanationTooLong), nil
	}

	result, err := h.store.Add(ctx, userID, term, explanation)
	if err != nil {
		return nil, errors.Wrapf(err, "add %q", term)
	}

	if h.logger != nil {
		h.logger.Infow("Explanation added",
			"user", userID,
			"term", term,
			"id", result.ID,
		)
	}

	return textResponse(glossary.FormatAdded(term, result)), nil
}

// handleExpl implements `!expl <term>`. The term must be a single word;
// any other field count is a syntax error.
func (h *Handler) handleExpl(ctx context.Context, text string) (*Response, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return textResponse(UsageExpl), nil
	}
	term := fields[1]

	report, err := h.query.Execute(ctx, term)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %q", term)
	}

	if report.Total == 0 {
		return textResponse(glossary.MsgNoEntryFound), nil
	}

	return &Response{
		Text: glossary.FormatReportTitle(report),
		Attachment: &Attachment{
			Title:    glossary.FormatReportTitle(report),
			Body:     glossary.FormatReportBody(report),
			Fallback: glossary.FormatReportFallback(report),
		},
	}, nil
}

// allow consults (and lazily creates) the user's token bucket.
func (h *Handler) allow(userID string) bool {
	h.mu.Lock()
	limiter, ok := h.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(h.limit, h.burst)
		h.limiters[userID] = limiter
	}
	h.mu.Unlock()

	return limiter.Allow()
}
