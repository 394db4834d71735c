// Package reporter implements the structured, NETCONF-style error reporter
// contract: a sink written to concurrently by decode/validate
// operations, reentrant by contract, that renders diagnostics as rpc-error
// shaped reports rather than plain Go errors.
package reporter
