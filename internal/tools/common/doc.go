// Package common provides shared helpers for MCP tool implementations,
// including instrumented handler wrappers and account name resolution
// used by every tool package.
package common
