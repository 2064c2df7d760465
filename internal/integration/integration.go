// Package integration declares the external-service interfaces the product
// depends on: code execution, code formatting, AI assistance, call-room
// provisioning and submission grading. Each has a placeholder implementation
// in stub.go; a real provider swaps in behind the same interface without
// touching handler or service code.
package integration

import "context"

// ExecutionRequest asks for a piece of code to be run.
type ExecutionRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Stdin    string `json:"stdin,omitempty"`
}

// ExecutionResult is the outcome of running code.
type ExecutionResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// FormatRequest asks for a piece of code to be reformatted.
type FormatRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// FormatResult carries the reformatted code.
type FormatResult struct {
	FormattedCode string `json:"formattedCode"`
}

// AssistRequest asks for AI help with a piece of code.
type AssistRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Prompt   string `json:"prompt"`
}

// AssistResult carries the assistant's suggestion.
type AssistResult struct {
	Suggestion string `json:"suggestion"`
}

// Room is a provisioned video-call room.
type Room struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// GradeResult is the outcome of evaluating a challenge submission.
type GradeResult struct {
	Status      string // "passed" or "failed"
	Score       int
	PassedTests int
	TotalTests  int
	Feedback    string
}

// CodeRunner executes code in an isolated environment.
type CodeRunner interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}

// Formatter reformats source code.
type Formatter interface {
	Format(ctx context.Context, req FormatRequest) (*FormatResult, error)
}

// Assistant produces AI guidance for a piece of code.
type Assistant interface {
	Assist(ctx context.Context, req AssistRequest) (*AssistResult, error)
}

// RoomProvider provisions video-call rooms with an external call service.
type RoomProvider interface {
	ProvisionRoom(ctx context.Context, snippetID string) (*Room, error)
}

// Grader evaluates a submission against a challenge's test cases. A real
// evaluator is a hard external dependency of this product; the stub cannot
// stand in for it in production.
type Grader interface {
	Grade(ctx context.Context, challengeID, language, code string, totalTests int) (*GradeResult, error)
}
