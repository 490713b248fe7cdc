package league

import "context"

// Repository persists the singleton league state for the active session.
type Repository interface {
	GetState(ctx context.Context) (State, error)
	PutState(ctx context.Context, state State) error
}
