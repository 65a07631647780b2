//go:build bspheredebug

package bsphere

const debugChecks = true
