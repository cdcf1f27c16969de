package service

import (
	"errors"
	"fmt"
)

// Result is the outcome of an expected service path: either data, or a
// message telling the caller why the request was refused. Unexpected faults
// never travel in a Result; they are returned as a plain error.
type Result[T any] struct {
	data    T
	message string
	failed  bool
}

// Ok wraps successful data.
func Ok[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Fail wraps a refusal message.
func Fail[T any](message string) Result[T] {
	return Result[T]{message: message, failed: true}
}

func (r Result[T]) IsSuccess() bool { return !r.failed }
func (r Result[T]) Data() T         { return r.data }
func (r Result[T]) Message() string { return r.message }

// rejection aborts a transactional flow with a caller-facing message. It is
// turned into a failed Result once the transaction has rolled back.
type rejection struct {
	reason  string
	message string
}

func (r *rejection) Error() string { return r.message }

func reject(reason, message string) error {
	return &rejection{reason: reason, message: message}
}

func asRejection(err error) (*rejection, bool) {
	var rej *rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

func notFoundMessage(kind string, id int64) string {
	return fmt.Sprintf("%s with id %d not found.", kind, id)
}
