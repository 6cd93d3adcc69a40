package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SchemaChecker verifies the corpus tables are still in place.
type SchemaChecker interface {
	CheckSchema(ctx context.Context) error
}
