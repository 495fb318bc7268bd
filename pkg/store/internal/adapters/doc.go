// Package adapters hides the difference between the pgx pool and sqlx
// behind one small interface, so the Postgres store runs the same SQL
// through either driver.
package adapters
