package repository

import (
	"context"

	"relaypager/internal/common/pagination"
	"relaypager/internal/domain/entity"
)

// ConnectionRepository fetches one page of a cursor-paginated connection.
// A nil connection with a nil error is an absent response and leaves the
// cache untouched.
type ConnectionRepository interface {
	FetchConnection(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error)
}

// ConnectionRepositoryFunc adapts a function to ConnectionRepository.
type ConnectionRepositoryFunc func(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error)

// FetchConnection calls f.
func (f ConnectionRepositoryFunc) FetchConnection(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error) {
	return f(ctx, q)
}
