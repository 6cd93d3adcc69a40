package facet

import "context"

// Repository projects values observed in storage.
type Repository interface {
	Classes(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	Schools(ctx context.Context) ([]string, error)
	Subschools(ctx context.Context) ([]string, error)
	Sources(ctx context.Context) ([]string, error)
	Effects(ctx context.Context) ([]string, error)
	Targets(ctx context.Context) ([]string, error)
}
