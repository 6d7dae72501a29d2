// Package async provides a composable Future/Promise system for modelling
// the outcome of a computation that may complete later.
//
// A Promise is the write-side handle to a result cell; a Future is the
// read-side view of the same cell. Producers create a Promise, publish its
// Future, and complete it exactly once via TrySuccess/TryFailure/Cancel.
// Consumers attach listeners or derive new futures through combinators
// (Map, FlatMap, Zip, error-handling variants, CascadeTo, Timeout) without
// ever blocking the completing goroutine.
//
// Listener dispatch always runs on a Scheduler (see the scheduler
// subpackage), never inline on the goroutine that completes a cell, except
// when that goroutine is already draining the same dispatch chain — see
// trampoline.go for how long combinator chains avoid unbounded recursion.
//
// This package is inspired by an earlier, independent future implementation
// kept in this module for adapter interop: future.Future[V]. It predates
// the listener/combinator model here and is an intentionally simpler
// task-based future.
package async
