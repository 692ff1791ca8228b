package runner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TestSuite defines a complete integration test scenario.
// Can either be a regular test with Steps, or a suite that references
// other case files.
type TestSuite struct {
	Name   string     `json:"name"`
	GameID string     `json:"game_id,omitempty"` // Used for regular tests
	Steps  []TestStep `json:"steps,omitempty"`   // Used for regular tests
	Cases  []string   `json:"cases,omitempty"`   // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single player input and its expected outcomes.
// Exactly one of Action or Chat is set: Action is a tagged action
// envelope posted to /actions, Chat is a free-text question posted to
// /chat.
type TestStep struct {
	Name         string          `json:"name,omitempty"`
	Action       json.RawMessage `json:"action,omitempty"`
	Chat         string          `json:"chat,omitempty"`
	Expectations Expectations    `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Session state properties - aligned with pkg/session
	CurrentScene   *string  `json:"current_scene,omitempty"`    // Current scene id
	Inventory      []string `json:"inventory,omitempty"`        // Full inventory contents (order independent)
	InDialogueWith *string  `json:"in_dialogue_with,omitempty"` // Active dialogue NPC id ("" for none)
	DialogueNode   *string  `json:"dialogue_node,omitempty"`    // Active dialogue node id
	IsFinished     *bool    `json:"is_finished,omitempty"`      // Game finished state
	EndingType     *string  `json:"ending_type,omitempty"`      // SUCCESS or FAILURE

	// Effect analysis
	EffectTypes     []string `json:"effect_types,omitempty"`     // Effects that must be present, in any order
	MessageContains []string `json:"message_contains,omitempty"` // Substrings of any message effect
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Effects  []string // effect types observed, for logging
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the session used for this test
}
