package interfaces

import "context"

//go:generate mockgen -source=idempotency_store_interface.go -destination=mocks/idempotency_store_interface_mock.go -package=mock_interfaces

// IIdempotencyStore keeps the outcome of requests carrying an Idempotency-Key.
//
// TryLock claims a key for the first caller; Remember stores the response to replay;
// Release frees a claimed key whose request failed so the client may retry.

type IIdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
	Release(ctx context.Context, scope, key string) error
}
