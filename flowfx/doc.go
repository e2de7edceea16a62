// Package flowfx provides a small sequential flow runner for multi-step
// startup and teardown sequences.
//
// # Core Principles
//
//   - Explicit Composition: Users explicitly compose flows; no implicit dependencies
//   - Stateless Execution: Flow state remains contained and explicit
//   - Predictable and Safe: Structured error handling, retries, and timeouts
//
// # Basic Usage
//
//	seq := flowfx.NewSequence().
//		Add(flowfx.NewTask("Setup", setupFunc)).
//		Add(flowfx.NewTask("Process", processFunc)).
//		Add(flowfx.NewTask("Cleanup", cleanupFunc))
//
//	err := seq.Run(ctx)
//
// # Features
//
//   - Context-aware cancellation and timeouts
//   - Retry mechanisms with exponential backoff
//   - Progress reporting through an injectable ProgressReporter
package flowfx
