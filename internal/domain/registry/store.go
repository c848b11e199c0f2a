package registry

import "context"

// PartitionStore is the tabular persistence boundary. A partition is an
// ordered table of positional rows; row 0 is the header. A single Append and
// a single UpdateCell are atomic, but nothing spanning two calls is — the
// engine's read-then-write sequences inherit that limitation.
type PartitionStore interface {
	// Ensure creates the partition with the given header row if it does not
	// exist yet. It is idempotent; concurrent first-writers may both call it.
	Ensure(ctx context.Context, name string, header []string) error
	Append(ctx context.Context, name string, row []string) error
	// Scan returns every row of the partition in storage order, header included.
	Scan(ctx context.Context, name string) ([][]string, error)
	UpdateCell(ctx context.Context, name string, rowIndex, colIndex int, value string) error
	// Partitions lists every partition name in the store.
	Partitions(ctx context.Context) ([]string, error)
}

// PhotoStore uploads worker ID photos and returns an opaque URL reference;
// the engine never inspects the contents or the returned URL.
type PhotoStore interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}
