package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduforge/lms-backend/internal/data/index"
	"github.com/eduforge/lms-backend/internal/pkg/apperr"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

// TextGenerator is the external generation service: one prompt in, one
// completion out. Transport failures surface as workflow-level errors.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder is the external embedding service.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Config holds the workflow termination and retrieval knobs.
type Config struct {
	AcceptScore    float64
	MaxAttempts    int
	RetrievalLimit int
}

func DefaultConfig() Config {
	return Config{
		AcceptScore:    90.0,
		MaxAttempts:    5,
		RetrievalLimit: 5,
	}
}

type stageID string

const (
	stageOptimize       stageID = "optimize"
	stageRetrieve       stageID = "retrieve"
	stageMetaprompt     stageID = "metaprompt"
	stageGenerate       stageID = "generate"
	stageVerify         stageID = "verify"
	stageEncodeNotebook stageID = "encode_notebook"
	stageEncodeDocument stageID = "encode_document"
	stageExtract        stageID = "extract_prompt"
	stageGenerateQA     stageID = "generate_qa"
)

// transition is the tagged-union return of every stage: either continue
// at a named stage or terminate the workflow.
type transition struct {
	next stageID
	done bool
}

func goTo(s stageID) transition { return transition{next: s} }
func halt() transition          { return transition{done: true} }

type stageFunc func(ctx context.Context, st *State) (transition, error)

// Engine runs one generation workflow per invocation. It owns the stage
// graph; all state lives in the per-invocation State, so concurrent
// invocations need no coordination.
type Engine struct {
	log      *logger.Logger
	llm      TextGenerator
	embed    Embedder
	docs     index.Index
	renderer *PageRenderer
	cfg      Config

	quizRubric Rubric
}

func NewEngine(
	log *logger.Logger,
	llm TextGenerator,
	embed Embedder,
	docs index.Index,
	renderer *PageRenderer,
	cfg Config,
) (*Engine, error) {
	if llm == nil || embed == nil || docs == nil {
		return nil, fmt.Errorf("engine not fully configured")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.AcceptScore <= 0 {
		cfg.AcceptScore = DefaultConfig().AcceptScore
	}
	if cfg.RetrievalLimit <= 0 {
		cfg.RetrievalLimit = DefaultConfig().RetrievalLimit
	}
	if err := QuizRubricV1.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		log:        log.With("service", "GenerationEngine"),
		llm:        llm,
		embed:      embed,
		docs:       docs,
		renderer:   renderer,
		cfg:        cfg,
		quizRubric: QuizRubricV1,
	}, nil
}

func (e *Engine) stages() map[stageID]stageFunc {
	return map[stageID]stageFunc{
		stageOptimize:       e.runOptimize,
		stageRetrieve:       e.runRetrieve,
		stageMetaprompt:     e.runMetaprompt,
		stageGenerate:       e.runGenerate,
		stageVerify:         e.runVerify,
		stageEncodeNotebook: e.runEncodeNotebook,
		stageEncodeDocument: e.runEncodeDocument,
		stageExtract:        e.runExtract,
		stageGenerateQA:     e.runGenerateQA,
	}
}

// Run executes the workflow for one request to termination. Cycles in
// the graph are bounded by the verify-stage policy, not the graph shape;
// the hard step cap only guards against a wiring bug.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if !req.Option.Valid() {
		return nil, fmt.Errorf("%w: unknown option %q", apperr.ErrInvalidArgument, req.Option)
	}
	if strings.TrimSpace(req.Prompt) == "" && strings.TrimSpace(req.HumanFeedback) == "" {
		return nil, fmt.Errorf("%w: empty prompt", apperr.ErrInvalidArgument)
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", apperr.ErrInvalidArgument, req.Difficulty)
	}

	st := newState(req)
	cur := e.entryStage(st)
	stages := e.stages()

	// Generous bound: the only cycle is generate<->verify, capped by
	// MaxAttempts, plus a handful of linear stages.
	maxSteps := 2*(e.cfg.MaxAttempts+2) + 8
	for step := 0; step < maxSteps; step++ {
		fn := stages[cur]
		if fn == nil {
			return nil, fmt.Errorf("no stage registered for %q", cur)
		}
		tr, err := fn(ctx, st)
		if err != nil {
			return nil, err
		}
		if tr.done {
			return resultFrom(st), nil
		}
		cur = tr.next
	}
	return nil, fmt.Errorf("workflow did not terminate after %d steps", maxSteps)
}

// entryStage selects the entry path exactly once per invocation.
func (e *Engine) entryStage(st *State) stageID {
	if st.Option == OptionPractice {
		return stageExtract
	}
	if strings.TrimSpace(st.HumanFeedback) != "" {
		st.revisionEntry = true
		return stageGenerate
	}
	return stageOptimize
}

func resultFrom(st *State) *Result {
	res := &Result{
		Status:            st.Status,
		Scores:            st.Scores,
		AcceptedOnTimeout: st.acceptedOnTimeout,
	}
	switch st.Status {
	case StatusFailed, StatusInvalid:
		res.RejectionReason = st.Artifact.Text
	default:
		artifact := st.Artifact
		res.Artifact = &artifact
	}
	return res
}

// ---- Stages ----

// runOptimize compacts the raw prompt into a retrieval query. One call,
// no retries; a failed or degenerate optimization falls back to the raw
// prompt and only weakens retrieval.
func (e *Engine) runOptimize(ctx context.Context, st *State) (transition, error) {
	out, err := e.llm.Complete(ctx, optimizerPrompt(st.InputContent))
	if err != nil {
		e.log.Warn("query optimization failed, using raw prompt", "error", err)
		st.OptimizedQuery = st.InputContent
		return goTo(stageRetrieve), nil
	}
	q := strings.TrimSpace(out)
	if q == "" {
		q = st.InputContent
	}
	st.OptimizedQuery = q
	return goTo(stageRetrieve), nil
}

func (e *Engine) runRetrieve(ctx context.Context, st *State) (transition, error) {
	st.Context = e.retrieveContext(ctx, st)
	e.log.Debug("context retrieved", "option", st.Option, "context_len", len(st.Context))
	if st.Option == OptionPractice {
		return goTo(stageGenerateQA), nil
	}
	return goTo(stageMetaprompt), nil
}

// runMetaprompt validates the topic and expands it into a structured
// plan. An invalid topic terminates the workflow with the model's
// rejection text as the reason.
func (e *Engine) runMetaprompt(ctx context.Context, st *State) (transition, error) {
	out, err := e.llm.Complete(ctx, metaPrompt(st.InputContent, st.Context, st.Option))
	if err != nil {
		return halt(), err
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(out)), "invalid prompt") {
		st.Artifact = textArtifact(out)
		st.Status = StatusFailed
		return halt(), nil
	}
	st.Artifact = textArtifact(out)
	st.Status = StatusPending
	st.Attempts = 0
	return goTo(stageGenerate), nil
}

func (e *Engine) runGenerate(ctx context.Context, st *State) (transition, error) {
	var prompt string
	switch {
	case st.revisionEntry && !st.drafted:
		prompt = revisionPrompt(flattenArtifact(st.PriorArtifact), st.HumanFeedback, st.Option)
	case st.Feedback != "":
		prompt = redraftPrompt(st.Artifact.Text, st.Feedback, st.Option)
	default:
		prompt = generationPrompt(st.Artifact.Text, st.Option)
	}

	out, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return halt(), err
	}
	st.Artifact = textArtifact(out)
	st.drafted = true
	return goTo(stageVerify), nil
}

// runVerify applies the accept/retry policy. Assignments always stop at
// the human-feedback gate; quizzes loop until the score threshold, the
// attempt cap, or a score plateau.
func (e *Engine) runVerify(ctx context.Context, st *State) (transition, error) {
	if st.Option == OptionAssignment {
		st.Status = StatusAwaitingFeedback
		return goTo(stageEncodeNotebook), nil
	}

	review, err := e.llm.Complete(ctx, verificationPrompt(st.Artifact.Text, feedbackClause(st.Feedback), e.quizRubric))
	if err != nil {
		return halt(), err
	}
	st.Feedback = review
	score := extractScore(review, e.quizRubric)
	st.Scores = append(st.Scores, score)
	e.log.Debug("draft scored", "score", score, "attempt", st.Attempts, "history", st.Scores)

	switch {
	case score >= e.cfg.AcceptScore:
		st.Status = StatusVerified
	case plateaued(st.Scores):
		st.Status = StatusVerified
		st.acceptedOnTimeout = true
	default:
		st.Attempts++
		if st.Attempts >= e.cfg.MaxAttempts {
			st.Status = StatusVerified
			st.acceptedOnTimeout = true
		} else {
			st.Status = StatusPending
			return goTo(stageGenerate), nil
		}
	}
	return goTo(stageEncodeDocument), nil
}

func (e *Engine) runEncodeNotebook(_ context.Context, st *State) (transition, error) {
	blocks := SegmentBlocks(st.Artifact.Text)
	st.Artifact = Artifact{
		Kind:     ArtifactNotebook,
		Text:     st.Artifact.Text,
		Notebook: BuildNotebook(blocks),
	}
	// The human-feedback gate survives encoding; every other path is done.
	if st.Status != StatusAwaitingFeedback {
		st.Status = StatusComplete
	}
	return halt(), nil
}

func (e *Engine) runEncodeDocument(_ context.Context, st *State) (transition, error) {
	if e.renderer == nil {
		return halt(), fmt.Errorf("page renderer not configured")
	}
	doc, err := e.renderer.Render(st.Artifact.Text)
	if err != nil {
		return halt(), err
	}
	st.Artifact = Artifact{
		Kind:     ArtifactDocument,
		Text:     st.Artifact.Text,
		Document: doc,
	}
	st.Status = StatusComplete
	return halt(), nil
}

// runExtract is the practice-mode entry: validate the topic and compact
// it into a retrieval query in one call.
func (e *Engine) runExtract(ctx context.Context, st *State) (transition, error) {
	out, err := e.llm.Complete(ctx, extractPrompt(st.InputContent))
	if err != nil {
		return halt(), err
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(out)), "invalid prompt") {
		st.Artifact = textArtifact(out)
		st.Status = StatusInvalid
		return halt(), nil
	}
	st.Status = StatusValid
	st.OptimizedQuery = strings.TrimSpace(out)
	if len(st.URLs) > 0 {
		return goTo(stageRetrieve), nil
	}
	return goTo(stageGenerateQA), nil
}

func (e *Engine) runGenerateQA(ctx context.Context, st *State) (transition, error) {
	topic := st.OptimizedQuery
	if topic == "" {
		topic = st.InputContent
	}
	out, err := e.llm.Complete(ctx, qaPrompt(topic, st.Difficulty, st.Context))
	if err != nil {
		return halt(), err
	}
	st.Artifact = textArtifact(out)
	st.Status = StatusComplete
	return halt(), nil
}

// flattenArtifact linearizes a prior structured artifact for the
// revision prompt. Notebooks flatten cell by cell; everything else keeps
// its stored linear text.
func flattenArtifact(a *Artifact) string {
	if a == nil {
		return ""
	}
	if a.Kind == ArtifactNotebook && a.Notebook != nil {
		return FlattenBlocks(a.Notebook.Blocks())
	}
	return a.Text
}
