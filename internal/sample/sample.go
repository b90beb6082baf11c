// Package sample holds the fixed functions the diagnostic test cases assert
// against, so the harness has a known-true and a known-nonzero value to check.
package sample

// Affirm always reports true.
func Affirm() bool { return true }

// Code returns a fixed nonzero status code.
func Code() int { return 1 }
