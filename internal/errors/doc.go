// Package errors defines typed errors for the random-number-mcp SDK.
//
// All error types implement the RandMCPError marker interface and are
// re-exported at the module root for public consumption.
package errors
