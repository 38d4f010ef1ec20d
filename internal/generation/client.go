// Package generation sends plan prompts to a text-generation provider.
package generation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 30 * time.Second

// SystemInstruction frames the assistant as a coach.
const SystemInstruction = "You are a professional swimming coach who creates personalized training plans. Be concise and focused on practical advice."

// Request is what a Provider receives for one call.
type Request struct {
	SystemInstruction string
	Prompt            string
	Template          Template
}

// Provider is one text-generation backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Result is the generated text plus where it came from.
type Result struct {
	Content  string
	Model    string
	Provider string
}

// Client is safe for concurrent use; nothing in it changes after construction.
type Client struct {
	provider  Provider
	templates Templates
	timeout   time.Duration
	logger    *zap.Logger
}

// NewClient wires a provider with the template table built for model.
func NewClient(provider Provider, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		provider:  provider,
		templates: NewTemplates(model),
		timeout:   timeout,
		logger:    logger.Named("generation"),
	}
}

// ProviderName reports the configured provider.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// Generate makes exactly one provider call and races it against the client timeout.
func (c *Client) Generate(ctx context.Context, prompt string, templateType TemplateType) (Result, error) {
	if prompt == "" {
		return Result{}, errors.New("prompt cannot be empty")
	}
	resolved, tmpl := c.templates.Resolve(templateType)
	log := c.logger.With(
		zap.String("provider", c.provider.Name()),
		zap.String("template", string(resolved)),
		zap.String("model", tmpl.Model),
	)
	log.Info("generating training plan", zap.Int("promptLength", len(prompt)))

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	// Buffered so an abandoned call can always deliver and exit.
	done := make(chan outcome, 1)
	go func() {
		text, err := c.provider.Generate(callCtx, Request{
			SystemInstruction: SystemInstruction,
			Prompt:            prompt,
			Template:          tmpl,
		})
		done <- outcome{text: text, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Warn("provider call timed out", zap.Duration("timeout", c.timeout))
		return Result{}, newError(ErrTimeout, c.provider.Name(), nil)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case out := <-done:
		if out.err != nil {
			var genErr *Error
			if !errors.As(out.err, &genErr) {
				genErr = newError(ErrProviderError, c.provider.Name(), out.err)
			}
			log.Error("provider call failed", zap.Error(genErr))
			return Result{}, genErr
		}
		if out.text == "" {
			log.Error("provider returned no text")
			return Result{}, newError(ErrEmptyResponse, c.provider.Name(), nil)
		}
		tokens, cost := estimateUsage(out.text)
		log.Debug("generated training plan",
			zap.Int("length", len(out.text)),
			zap.Int("estimatedTokens", tokens),
			zap.Float64("estimatedCost", cost),
		)
		return Result{Content: out.text, Model: tmpl.Model, Provider: c.provider.Name()}, nil
	}
}

// estimateUsage is a rough count at ~4 characters per token.
func estimateUsage(text string) (tokens int, cost float64) {
	tokens = (len(text) + 3) / 4
	cost = float64(tokens) / 1000 * 0.00025
	return tokens, cost
}
