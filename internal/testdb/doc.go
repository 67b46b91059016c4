// Package testdb provides database helpers for integration tests.
//
// Tests that need PostgreSQL call GetTestDBWithT, which skips the test when
// FLASHLEARN_TEST_DATABASE_URL is unset, migrates the schema, and returns a
// connection. WithTx runs a test body inside a transaction that is always
// rolled back, so tests can share one database and run in parallel.
package testdb
