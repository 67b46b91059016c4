// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also owns the schema: the goose
// migrations are embedded and applied with Migrate.
package postgres
