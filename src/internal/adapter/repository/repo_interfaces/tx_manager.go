package repo_interfaces

import "context"

// TxManager runs fn as one unit of work. Repository calls made with the ctx passed
// to fn join the unit; a non-nil error from fn rolls every change back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
