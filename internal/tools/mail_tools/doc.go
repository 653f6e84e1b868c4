// Package mail_tools provides MCP tools for reading and manipulating
// Apple Mail through generated AppleScript.
//
// Read-only tools (accounts, inbox listings, search, statistics, thread
// views) are always registered. Write tools (compose, reply, move, status
// updates, trash, drafts, export) are registered only when the server runs
// with write access enabled.
//
// All tools address messages by subject keyword: operations act on the
// first message whose subject contains the keyword, in the order Mail.app
// reports messages. Bulk tools accept a keyword string or an array of
// keywords and report per-keyword results.
package mail_tools
