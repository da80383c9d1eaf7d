// Package drill implements the pure computations behind quiz selection and
// learner reports: recency windows over the answer ledger, uniform random
// sampling, weak-item classification, and the monthly activity calendar.
//
// Functions in this package never touch storage. Callers fetch answers and
// items through the store interfaces and pass them in, which keeps every rule
// here deterministic apart from the injected shuffle.
package drill
