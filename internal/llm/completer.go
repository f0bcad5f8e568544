package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

// Completer sends a (system, user) prompt pair to the model in JSON mode and returns
// parsed output. It applies the role's token budget and the configured temperature.
// It never retries and never caches.
type Completer struct {
	client Client
	config *Config
	tier   ModelTier
	logger *zap.Logger
}

// NewCompleter creates a completion client on top of a provider client.
func NewCompleter(client Client, config *Config, logger *zap.Logger) *Completer {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{
		client: client,
		config: config,
		tier:   TierStandard,
		logger: logger,
	}
}

// WithTier returns a copy of the completer that uses a different model tier.
func (c *Completer) WithTier(tier ModelTier) *Completer {
	clone := *c
	clone.tier = tier
	return &clone
}

// Complete runs one completion and returns the parsed JSON document.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string, role types.UserRole) (json.RawMessage, error) {
	model := c.client.GetModel(c.tier)
	req := Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Tier:         c.tier,
		MaxTokens:    c.config.MaxTokens(role),
		Temperature:  c.config.Temperature,
	}

	start := time.Now()
	text, err := c.client.GenerateJSON(ctx, req)
	c.logger.Debug("completion finished",
		zap.String("model", model),
		zap.String("role", string(role)),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		if errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrTruncatedResponse) {
			return nil, &IncompleteResponseError{Model: model, Cause: err}
		}
		return nil, &APICallError{Model: model, Message: "completion request failed", Cause: err}
	}

	text = CleanJSONBlock(text)
	if strings.TrimSpace(text) == "" {
		return nil, &IncompleteResponseError{Model: model, Cause: ErrEmptyResponse}
	}

	if !json.Valid([]byte(text)) {
		var probe any
		parseErr := json.Unmarshal([]byte(text), &probe)
		return nil, &MalformedJSONError{Content: text, Cause: parseErr}
	}

	return json.RawMessage(text), nil
}

// CompleteInto runs one completion, validates the document against a named schema and
// decodes it into out. This is the single place where model output becomes typed data.
func (c *Completer) CompleteInto(ctx context.Context, systemPrompt, userPrompt string, role types.UserRole, schemaName string, out any) error {
	raw, err := c.Complete(ctx, systemPrompt, userPrompt, role)
	if err != nil {
		return err
	}
	return Decode(raw, schemaName, out)
}

// Decode validates a JSON document against a named schema and unmarshals it.
func Decode(raw json.RawMessage, schemaName string, out any) error {
	if err := schemas.Validate(schemaName, raw); err != nil {
		return fmt.Errorf("response does not match %s schema: %w", schemaName, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedJSONError{Content: string(raw), Cause: err}
	}
	return nil
}
