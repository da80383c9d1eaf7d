// Package testdb provides utilities for database integration tests: locating
// the test database, applying the embedded migrations, running each test in a
// transaction that is rolled back afterwards, and inserting fixture rows.
//
// Tests that use this package carry the "integration" build tag and skip
// themselves when no test database is configured.
package testdb
