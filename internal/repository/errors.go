package repository

import "github.com/jackc/pgx/v5"

// ErrNotFound is returned when a requested row does not exist. It aliases
// pgx.ErrNoRows so QueryRow scan errors need no translation, while in-memory
// fakes can return the same sentinel.
var ErrNotFound = pgx.ErrNoRows
