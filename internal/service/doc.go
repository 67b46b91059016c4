// Package service holds the application use cases: accounts, flashcard
// management and generation, study sessions and analytics.
//
// Services receive their stores and collaborators through constructor
// injection and open database transactions with store.RunInTransaction when
// an operation spans several writes. Expected failures are reported as
// sentinel errors from the domain, store, auth and generation packages so the
// API layer can map them with errors.Is; unexpected failures are wrapped in a
// ServiceError that records the operation.
package service
