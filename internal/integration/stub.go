package integration

import (
	"context"
	"fmt"
	"strings"
)

// Stub implements every integration interface with fixed-shape placeholder
// responses. It is the default wiring until real providers exist and doubles
// as the test implementation.
type Stub struct {
	// CallDomain is the base URL rooms are provisioned under.
	CallDomain string
}

var (
	_ CodeRunner   = (*Stub)(nil)
	_ Formatter    = (*Stub)(nil)
	_ Assistant    = (*Stub)(nil)
	_ RoomProvider = (*Stub)(nil)
	_ Grader       = (*Stub)(nil)
)

// Execute returns a templated result instead of running anything.
func (s *Stub) Execute(_ context.Context, req ExecutionRequest) (*ExecutionResult, error) {
	return &ExecutionResult{
		Stdout:   fmt.Sprintf("[execution pending] %s runner not yet configured\n", req.Language),
		ExitCode: 0,
	}, nil
}

// Format echoes the code back unchanged.
func (s *Stub) Format(_ context.Context, req FormatRequest) (*FormatResult, error) {
	return &FormatResult{FormattedCode: req.Code}, nil
}

// Assist returns canned guidance referencing the prompt.
func (s *Stub) Assist(_ context.Context, req AssistRequest) (*AssistResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = "your code"
	}
	return &AssistResult{
		Suggestion: fmt.Sprintf("AI assistance is not yet available. Your request about %q was received.", prompt),
	}, nil
}

// ProvisionRoom derives a deterministic room name from the snippet id, so
// repeated calls for the same snippet land in the same room.
func (s *Stub) ProvisionRoom(_ context.Context, snippetID string) (*Room, error) {
	name := "snippet-" + snippetID
	return &Room{
		Name: name,
		URL:  strings.TrimSuffix(s.CallDomain, "/") + "/" + name,
	}, nil
}

// Grade returns a static perfect result: every test passed, score 100.
func (s *Stub) Grade(_ context.Context, _, _, _ string, totalTests int) (*GradeResult, error) {
	if totalTests <= 0 {
		totalTests = 1
	}
	return &GradeResult{
		Status:      "passed",
		Score:       100,
		PassedTests: totalTests,
		TotalTests:  totalTests,
		Feedback:    "Great job! All test cases passed.",
	}, nil
}
