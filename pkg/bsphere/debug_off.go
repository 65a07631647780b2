//go:build !bspheredebug

package bsphere

// debugChecks enables caller-contract assertions. Build with
// -tags=bspheredebug to turn them on.
const debugChecks = false
