// Package fuzztests houses the fuzz harnesses for the formatting pipeline
// (source -> lexer -> parser -> formatter). They guard against panics, hangs,
// and idempotence violations on arbitrary inputs.
package fuzztests
