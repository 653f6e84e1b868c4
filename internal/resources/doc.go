// Package resources provides MCP resources for mail context data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the usage guide and the Mail.app account list.
package resources
