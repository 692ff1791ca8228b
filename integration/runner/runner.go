package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/pkg/engine"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// actionResponse mirrors the API's action and chat responses.
type actionResponse struct {
	State   *session.State  `json:"state"`
	Effects []engine.Effect `json:"effects"`
}

// Runner executes integration tests against a running mystery-engine API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	GameOverride      string // If set, overrides the game for all test cases
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	gameID := suite.GameID
	if r.GameOverride != "" {
		gameID = r.GameOverride
	}

	sessionID, err := r.createSession(ctx, gameID)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = sessionID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, sessionID, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] FAILED %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] OK %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// createSession creates a fresh play session for the given game
func (r *Runner) createSession(ctx context.Context, gameID string) (uuid.UUID, error) {
	body, err := json.Marshal(map[string]string{"gameId": gameID})
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.BaseURL+"/v1/sessions", bytes.NewBuffer(body))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to create POST request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to create session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return uuid.UUID{}, fmt.Errorf("create session returned %d: %s", resp.StatusCode, string(respBody))
	}

	var st session.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to decode created session: %w", err)
	}
	return st.ID, nil
}

// runStep executes a single test step and checks expectations
func (r *Runner) runStep(ctx context.Context, sessionID uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var resp *actionResponse
	var err error
	switch {
	case step.Chat != "":
		resp, err = r.post(stepCtx, sessionID, "chat", mustJSON(map[string]string{"message": step.Chat}))
	case len(step.Action) > 0:
		resp, err = r.post(stepCtx, sessionID, "actions", step.Action)
	default:
		err = fmt.Errorf("step has neither action nor chat")
	}
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	for _, e := range resp.Effects {
		result.Effects = append(result.Effects, string(e.Type))
	}

	if err := checkExpectations(step.Expectations, resp); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

func mustJSON(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// post sends a request body to /v1/sessions/{id}/{leaf} and decodes
// the action response.
func (r *Runner) post(ctx context.Context, sessionID uuid.UUID, leaf string, body json.RawMessage) (*actionResponse, error) {
	url := fmt.Sprintf("%s/v1/sessions/%s/%s", r.BaseURL, sessionID, leaf)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request returned %d: %s", resp.StatusCode, string(respBody))
	}

	var actionResp actionResponse
	if err := json.Unmarshal(respBody, &actionResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if actionResp.State == nil {
		return nil, fmt.Errorf("response carried no state")
	}
	return &actionResp, nil
}

// checkExpectations validates the test expectations against the step response
func checkExpectations(exp Expectations, resp *actionResponse) error {
	st := resp.State

	if exp.CurrentScene != nil {
		if st.CurrentSceneID != *exp.CurrentScene {
			return fmt.Errorf("expected scene %s, got %s", *exp.CurrentScene, st.CurrentSceneID)
		}
	}

	// Full inventory check (order independent)
	if len(exp.Inventory) > 0 {
		expected := make(map[string]bool)
		for _, item := range exp.Inventory {
			expected[item] = true
		}

		actual := make(map[string]bool)
		for _, item := range st.Inventory {
			actual[item] = true
		}

		for expectedItem := range expected {
			if !actual[expectedItem] {
				return fmt.Errorf("expected inventory to contain '%s', but it's missing. Actual inventory: %v", expectedItem, st.Inventory)
			}
		}
		for actualItem := range actual {
			if !expected[actualItem] {
				return fmt.Errorf("inventory contains unexpected item '%s'. Expected inventory: %v, Actual: %v", actualItem, exp.Inventory, st.Inventory)
			}
		}
	}

	if exp.InDialogueWith != nil {
		if st.ActiveDialogueNPCID != *exp.InDialogueWith {
			return fmt.Errorf("expected dialogue with %q, got %q", *exp.InDialogueWith, st.ActiveDialogueNPCID)
		}
	}

	if exp.DialogueNode != nil {
		if st.ActiveDialogueNodeID != *exp.DialogueNode {
			return fmt.Errorf("expected dialogue node %q, got %q", *exp.DialogueNode, st.ActiveDialogueNodeID)
		}
	}

	if exp.IsFinished != nil {
		if st.IsGameFinished != *exp.IsFinished {
			return fmt.Errorf("expected is_finished to be %t, got %t", *exp.IsFinished, st.IsGameFinished)
		}
	}

	if exp.EndingType != nil {
		if string(st.EndingType) != *exp.EndingType {
			return fmt.Errorf("expected ending %s, got %s", *exp.EndingType, st.EndingType)
		}
	}

	for _, wantType := range exp.EffectTypes {
		if !engine.HasEffect(resp.Effects, engine.EffectType(wantType)) {
			return fmt.Errorf("expected effect %s, got %v", wantType, effectTypes(resp.Effects))
		}
	}

	for _, substr := range exp.MessageContains {
		found := false
		for _, e := range resp.Effects {
			if strings.Contains(strings.ToLower(e.Message), strings.ToLower(substr)) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected a message effect containing %q", substr)
		}
	}

	return nil
}

func effectTypes(effects []engine.Effect) []string {
	types := make([]string, 0, len(effects))
	for _, e := range effects {
		types = append(types, string(e.Type))
	}
	return types
}
