// Package mail is the domain client for Mail.app. Each exported method on
// Client renders one AppleScript from escaped parameters, executes it through
// an applescript.Runner, and either returns the report text or parses the
// output into structured records.
//
// Conventions shared by every generator:
//
//   - accounts are resolved by exact name; mailboxes by exact name with a
//     single INBOX -> Inbox retry (the two spellings vary by account type)
//   - nested destinations use "Parent/Child" paths resolved right to left
//   - operations that act on one message select the first message whose
//     subject contains the keyword, in client-reported order (see FindPolicy)
//   - mutating loops stop at a caller-supplied cap
//   - the whole Mail interaction is wrapped in a try block that converts any
//     failure into an "Error: <message>" result line; progress made before
//     the failure is not rolled back
package mail
