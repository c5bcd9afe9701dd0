package repositories

import "context"

// TxFn is a function that runs within a unit of work
type TxFn func(ctx context.Context) error

// TransactionManager runs a group of repository calls atomically. Every
// repository call made with the ctx handed to fn joins the same unit of work;
// returning an error from fn rolls all of them back.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
