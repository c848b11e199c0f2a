package store

import (
	"context"
	"fmt"
	"time"

	registrydomain "qr-manager-go/internal/domain/registry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore implements registry.PartitionStore on a single relational
// table keyed by (partition, row_index). Cells are stored as a jsonb array so
// the positional row model survives unchanged; UpdateCell is a single
// jsonb_set statement, which keeps the one atomicity guarantee the engine
// relies on.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type storeRow struct {
	Partition string    `gorm:"primaryKey;column:partition"`
	RowIndex  int64     `gorm:"primaryKey;column:row_index"`
	Cells     []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (storeRow) TableName() string {
	return "store_rows"
}

// Ensure inserts the header at row 0 unless the partition already exists.
// ON CONFLICT DO NOTHING makes concurrent first-writers both succeed.
func (s *PostgresStore) Ensure(ctx context.Context, name string, header []string) error {
	row := storeRow{Partition: name, RowIndex: 0, Cells: header}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// Append assigns the next row index under a per-partition advisory lock so
// two concurrent appends cannot claim the same index.
func (s *PostgresStore) Append(ctx context.Context, name string, row []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", name).Error; err != nil {
			return err
		}

		var next *int64
		if err := tx.Raw("SELECT MAX(row_index) + 1 FROM store_rows WHERE partition = ?", name).Scan(&next).Error; err != nil {
			return err
		}
		if next == nil {
			return fmt.Errorf("%w: %s", registrydomain.ErrPartitionNotFound, name)
		}

		return tx.Create(&storeRow{Partition: name, RowIndex: *next, Cells: row}).Error
	})
}

func (s *PostgresStore) Scan(ctx context.Context, name string) ([][]string, error) {
	var rows []storeRow
	if err := s.db.WithContext(ctx).
		Where("partition = ?", name).
		Order("row_index asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", registrydomain.ErrPartitionNotFound, name)
	}

	result := make([][]string, len(rows))
	for i, row := range rows {
		result[i] = row.Cells
	}
	return result, nil
}

func (s *PostgresStore) UpdateCell(ctx context.Context, name string, rowIndex, colIndex int, value string) error {
	if colIndex < 0 {
		return fmt.Errorf("invalid column %d", colIndex)
	}

	result := s.db.WithContext(ctx).Exec(
		"UPDATE store_rows SET cells = jsonb_set(cells, ?::text[], to_jsonb(?::text)) WHERE partition = ? AND row_index = ?",
		fmt.Sprintf("{%d}", colIndex), value, name, int64(rowIndex),
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("partition %s has no row %d", name, rowIndex)
	}
	return nil
}

func (s *PostgresStore) Partitions(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).
		Model(&storeRow{}).
		Distinct("partition").
		Order("partition asc").
		Pluck("partition", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
