// Package applescript generates and executes AppleScript against the local
// Mail.app via the osascript interpreter.
//
// The package has three responsibilities:
//
//   - Escaping: Escape and Quote are the single boundary where caller-supplied
//     text enters a generated script. All generators must pass user text
//     through Quote; nothing else in the codebase performs script escaping.
//   - Building: Script accumulates statements with indentation so generators
//     compose scripts from fragments instead of raw string formatting.
//   - Execution: Runner feeds a script to osascript on standard input,
//     enforces a wall-clock timeout, and maps process failures onto a small
//     error taxonomy (ErrTimeout, *ScriptError, wrapped launch errors).
package applescript
