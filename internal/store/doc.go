// Package store declares the persistence contracts for users, flashcards,
// study sessions, quiz attempts and analytics aggregates, plus the error
// sentinels every implementation maps driver failures onto.
//
// Stores expose WithTx so services can group calls in one transaction with
// RunInTransaction. The PostgreSQL implementations live in
// internal/platform/postgres.
package store
