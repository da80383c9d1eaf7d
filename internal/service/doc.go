// Package service provides the application-level operations of the learning
// engine. LearningService serves a learner's own drills: daily section
// progression, quiz selection, answer submission, and the menu summary.
// ReportService serves activity reports and resolves which learner a caller
// may read, so guardians only ever see their own dependents.
//
// Services orchestrate the store interfaces and the pure rules in
// internal/domain and internal/domain/drill; they hold no state of their own.
package service
