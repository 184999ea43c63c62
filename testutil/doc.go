// Package testutil provides testing utilities for runbits.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source, random bitset generators and a dense
// reference model to cross-check run-list operations against.
//
// # Random Bitsets
//
//	rng := testutil.NewRNG(seed)
//	b, m := rng.Bitset(1<<12, 64) // bitset and matching model
//
// # Reference Model
//
//	m := testutil.NewModel(100)
//	m.SetRange(10, 20, true)
//	m.Check(b) // error if b disagrees with m
package testutil
