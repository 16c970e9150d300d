// Package runner drives the agent execution loop: it exchanges turns with
// the model client and dispatches requested tool calls.
//
// Invariants:
//   - every assistant tool call is answered by exactly one tool result
//     with the same call id, in issue order, before the next model call;
//   - tool dispatch within an iteration is strictly sequential;
//   - the loop terminates within the configured iteration bound for any
//     model behavior.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> tool_result -> ... -> assistant(text)
package runner
