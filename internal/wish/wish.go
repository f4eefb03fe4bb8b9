// Package wish drafts short customer greetings for the MESSAGE and GREET
// milestones. Generation never fails from the caller's point of view: an
// empty or failed response is replaced by a fixed fallback text.
package wish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/observability"
)

// ErrNotConfigured is returned by generators that have no credentials.
var ErrNotConfigured = errors.New("wish generator not configured")

// Request describes the customer a wish is drafted for.
type Request struct {
	CustomerName string
	EventType    domain.EventType
	Company      string
}

// Generator produces raw text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Draft is a wish ready to be sent by staff.
type Draft struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Drafter wraps a Generator with the prompt and fallback rules.
type Drafter struct {
	gen     Generator
	company string
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewDrafter builds a drafter. A nil generator always yields fallbacks.
func NewDrafter(gen Generator, company string, timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Drafter {
	if gen == nil {
		gen = unavailable{}
	}
	return &Drafter{gen: gen, company: company, timeout: timeout, logger: logger, metrics: metrics}
}

// Draft asks the generator for a wish and substitutes a fallback on failure.
func (d *Drafter) Draft(ctx context.Context, customer domain.Customer) Draft {
	req := Request{CustomerName: customer.Name, EventType: customer.EventType, Company: d.company}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	text, err := d.gen.Generate(ctx, Prompt(req))
	if err != nil {
		d.logger.Warn("wish generation failed, using fallback",
			zap.String("customer_id", customer.ID), zap.Error(err))
		d.metrics.RecordWishFallback()
		return Draft{Text: ErrorFallback(req), Fallback: true}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		d.metrics.RecordWishFallback()
		return Draft{Text: EmptyFallback(req), Fallback: true}
	}
	return Draft{Text: text}
}

// Prompt renders the generation prompt for req.
func Prompt(req Request) string {
	return fmt.Sprintf("Write a short, professional, yet warm %s wish for a customer named %s. "+
		"The company name is %s. Keep it under 30 words. "+
		"Mention that we value their relationship and hope their day is as sparkling as our jewelry.",
		strings.ToLower(string(req.EventType)), req.CustomerName, req.Company)
}

// EmptyFallback is used when the generator answers with no text.
func EmptyFallback(req Request) string {
	return fmt.Sprintf("Happy Celebration from %s! Wishing you a wonderful day filled with joy and sparkle.", req.Company)
}

// ErrorFallback is used when the generator call fails.
func ErrorFallback(req Request) string {
	return fmt.Sprintf("Happy %s to our valued customer, %s! Best wishes from team %s.",
		strings.ToLower(string(req.EventType)), req.CustomerName, req.Company)
}

type unavailable struct{}

func (unavailable) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
