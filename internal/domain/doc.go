// Package domain contains the core business entities, value objects, and
// domain logic of the application: learning items, the append-only answer
// ledger, per-learner section progress, and the regional calendar day that
// drives daily section advancement. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
