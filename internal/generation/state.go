package generation

// Option selects the artifact family: prompt templates, rubric, and the
// terminal encoder.
type Option string

const (
	OptionAssignment Option = "assignment"
	OptionQuiz       Option = "quiz"
	OptionPractice   Option = "practice"
)

func (o Option) Valid() bool {
	switch o {
	case OptionAssignment, OptionQuiz, OptionPractice:
		return true
	}
	return false
}

// Difficulty constrains practice-mode generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Status drives all branching in the workflow graph.
type Status string

const (
	StatusPending          Status = "pending"
	StatusValid            Status = "valid"
	StatusInvalid          Status = "invalid"
	StatusFailed           Status = "failed"
	StatusVerified         Status = "verified"
	StatusAwaitingFeedback Status = "awaiting_feedback"
	StatusComplete         Status = "complete"
)

// ArtifactKind tells which representation an Artifact carries. Text is the
// working form; notebook and document exist only at/after the terminal stage.
type ArtifactKind string

const (
	ArtifactText     ArtifactKind = "text"
	ArtifactNotebook ArtifactKind = "notebook"
	ArtifactDocument ArtifactKind = "document"
)

// Artifact is the generated educational content. The linear Text is kept
// alongside the encoded form so a later revision never has to reverse an
// encoder: quiz revisions flatten from Text, not from rendered pages.
type Artifact struct {
	Kind     ArtifactKind      `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Notebook *Notebook         `json:"notebook,omitempty"`
	Document *RenderedDocument `json:"document,omitempty"`
}

func textArtifact(text string) Artifact {
	return Artifact{Kind: ArtifactText, Text: text}
}

// Request is the workflow invocation surface. HumanFeedback plus
// PriorArtifact select the revision entry path.
type Request struct {
	Prompt        string     `json:"prompt"`
	Option        Option     `json:"option"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	URLs          []string   `json:"urls,omitempty"`
	HumanFeedback string     `json:"human_feedback,omitempty"`
	PriorArtifact *Artifact  `json:"prior_artifact,omitempty"`
}

// Result is what one workflow invocation returns to the caller.
type Result struct {
	Status            Status    `json:"status"`
	Artifact          *Artifact `json:"artifact,omitempty"`
	RejectionReason   string    `json:"rejection_reason,omitempty"`
	Scores            []float64 `json:"scores,omitempty"`
	AcceptedOnTimeout bool      `json:"accepted_on_timeout,omitempty"`
}

// State is the single mutable record threaded through every stage. One
// instance exists per invocation and is discarded when Run returns;
// continuation across an awaiting_feedback boundary happens by the caller
// re-invoking with PriorArtifact and HumanFeedback populated.
type State struct {
	InputContent   string
	OptimizedQuery string
	Context        string
	Artifact       Artifact
	PriorArtifact  *Artifact
	HumanFeedback  string
	Status         Status
	Attempts       int
	Feedback       string
	Scores         []float64
	Option         Option
	Difficulty     Difficulty
	URLs           []string

	// Entry path is selected once at Run start and never re-evaluated.
	revisionEntry     bool
	drafted           bool
	acceptedOnTimeout bool
}

func newState(req Request) *State {
	diff := req.Difficulty
	if diff == "" {
		diff = DifficultyMedium
	}
	return &State{
		InputContent:  req.Prompt,
		Artifact:      textArtifact(""),
		PriorArtifact: req.PriorArtifact,
		HumanFeedback: req.HumanFeedback,
		Status:        StatusPending,
		Option:        req.Option,
		Difficulty:    diff,
		URLs:          req.URLs,
	}
}
