/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package adapter

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"dirpx.dev/faults"
)

// Postgres SQLSTATE codes with a non-500 meaning.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgInvalidTextRepr      = "22P02"
	pgStringTruncation     = "22001"
	pgNumericOutOfRange    = "22003"
	pgSerializationFailure = "40001"
)

// FromPG converts a pgx error.
//
//	pgx.ErrNoRows                       -> not found
//	23505 unique_violation              -> conflict (already exists)
//	23503 foreign_key_violation         -> conflict
//	40001 serialization_failure         -> conflict
//	22P02, 22001, 22003, 23502, 23514   -> malformed request
//	anything else                       -> unclassified
//
// Constraint, table and column names from the server go into the fault's
// details, which are logged but never returned to the caller.
func FromPG(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := faults.As(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return faults.NotFound("no records found").WithCause(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return faults.Wrap(err, "sql error")
	}

	var f *faults.Fault
	switch pgErr.Code {
	case pgUniqueViolation:
		f = faults.AlreadyExists("duplicate value violates unique constraint")
	case pgForeignKeyViolation:
		f = faults.Conflict("foreign key violation")
	case pgSerializationFailure:
		f = faults.Conflict("concurrent update, please retry")
	case pgInvalidTextRepr:
		f = faults.Malformed("invalid input syntax")
	case pgStringTruncation:
		f = faults.Malformed("value too long for column")
	case pgNumericOutOfRange:
		f = faults.Malformed("numeric value out of range")
	case pgNotNullViolation:
		f = faults.Malformed("required value is missing")
	case pgCheckViolation:
		f = faults.Malformed("value violates check constraint")
	default:
		return faults.Wrap(err, "sql error").WithDetails(pgDetails(pgErr))
	}
	return f.WithCause(err).WithDetails(pgDetails(pgErr))
}

func pgDetails(e *pgconn.PgError) map[string]any {
	d := map[string]any{"sqlstate": e.Code}
	for k, v := range map[string]string{
		"schema":     e.SchemaName,
		"table":      e.TableName,
		"column":     e.ColumnName,
		"constraint": e.ConstraintName,
		"detail":     e.Detail,
	} {
		if v != "" {
			d[k] = v
		}
	}
	return d
}

// FromRedis converts a go-redis error. A cache miss (redis.Nil) is a
// not-found fault; everything else is unclassified.
func FromRedis(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := faults.As(err); ok {
		return err
	}
	if errors.Is(err, redis.Nil) {
		return faults.NotFound("cached entry not found").WithCause(err)
	}
	return faults.Wrap(err, "cache error")
}
