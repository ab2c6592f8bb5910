package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/unhbank/banking-assistant/internal/domain/chatlog"
	"github.com/unhbank/banking-assistant/internal/domain/rag"
	"github.com/unhbank/banking-assistant/internal/domain/safety"
	"github.com/unhbank/banking-assistant/internal/infra/llm"
)

// retrieveTopK is how many snippets ground each answer.
const retrieveTopK = 3

// gate screens a message before anything else runs.
type gate interface {
	Check(text string) safety.Result
}

// classifier labels an allowed message with an intent.
type classifier interface {
	Classify(text string) string
}

// generator is the slice of llm.Provider the orchestrator needs.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelInfo() llm.ModelMeta
}

// Orchestrator runs the full pipeline for one chat turn. Stages execute in a
// fixed order and exactly one log record is appended per turn, whether the
// message was refused or answered.
type Orchestrator struct {
	safety       gate
	intents      classifier
	retriever    rag.Searcher
	llm          generator
	logger       chatlog.Logger
	systemPrompt string

	now func() time.Time // test seam
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(
	safetyGate gate,
	intents classifier,
	retriever rag.Searcher,
	model generator,
	logger chatlog.Logger,
	systemPrompt string,
) *Orchestrator {
	return &Orchestrator{
		safety:       safetyGate,
		intents:      intents,
		retriever:    retriever,
		llm:          model,
		logger:       logger,
		systemPrompt: systemPrompt,
		now:          time.Now,
	}
}

// Handle processes one user message. Refused messages short-circuit after the
// safety gate and never reach retrieval or the model. Retrieval failures
// degrade to an answer without context rather than failing the turn; only a
// generation error (from a provider without fallback) surfaces as an error.
func (o *Orchestrator) Handle(ctx context.Context, userMsg string, history []Message) (Reply, error) {
	start := o.now()
	interactionID := uuid.NewString()
	msg := strings.TrimSpace(userMsg)
	model := o.llm.ModelInfo().ID

	if result := o.safety.Check(msg); !result.Allowed {
		latency := o.now().Sub(start).Milliseconds()
		o.append(ctx, chatlog.InteractionRecord{
			ID:                 interactionID,
			UserMsg:            msg,
			Intent:             string(result.Category),
			Response:           result.Message,
			Model:              model,
			LatencyMS:          latency,
			RiskFlag:           result.Risky,
			SensitiveFlag:      result.Sensitive,
			RetrievedDocIDs:    []string{},
			GuardrailTriggered: string(result.Category),
		})

		return Reply{
			ID:        interactionID,
			Intent:    string(result.Category),
			Response:  result.Message,
			Sources:   []rag.Snippet{},
			LatencyMS: latency,
		}, nil
	}

	intent := o.intents.Classify(msg)

	snippets, err := o.retriever.Retrieve(ctx, msg, retrieveTopK)
	if err != nil {
		log.WithError(err).Warn("retrieval failed, answering without context")
		snippets = nil
	}

	prompt := BuildPrompt(o.systemPrompt, msg, history, snippets)
	answer, err := o.llm.Generate(ctx, prompt)
	if err != nil {
		return Reply{}, fmt.Errorf("chat: generate answer: %w", err)
	}

	latency := o.now().Sub(start).Milliseconds()

	docIDs := make([]string, 0, len(snippets))
	for _, s := range snippets {
		docIDs = append(docIDs, s.ID)
	}

	o.append(ctx, chatlog.InteractionRecord{
		ID:              interactionID,
		UserMsg:         msg,
		Intent:          intent,
		Response:        answer,
		Model:           model,
		LatencyMS:       latency,
		RetrievedDocIDs: docIDs,
	})

	if snippets == nil {
		snippets = []rag.Snippet{}
	}
	return Reply{
		ID:        interactionID,
		Intent:    intent,
		Response:  answer,
		Sources:   snippets,
		LatencyMS: latency,
	}, nil
}

// append writes the log record. A sink failure must not fail the turn; the
// user already has an answer at this point.
func (o *Orchestrator) append(ctx context.Context, rec chatlog.InteractionRecord) {
	if err := o.logger.Log(ctx, rec); err != nil {
		log.WithError(err).WithField("interaction_id", rec.ID).Error("failed to append interaction log")
	}
}
