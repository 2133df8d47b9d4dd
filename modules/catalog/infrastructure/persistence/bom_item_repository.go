package persistence

import (
	"context"

	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
	"github.com/partlane/partlane/modules/catalog/infrastructure/persistence/models"
	"github.com/partlane/partlane/pkg/composables"
)

const bomItemColumns = `id, parent_part_id, sub_part_id, quantity::text, overage, reference, note, created_at, updated_at`

type BomItemRepository struct{}

func NewBomItemRepository() bomitem.Repository {
	return &BomItemRepository{}
}

func (r *BomItemRepository) GetByParent(ctx context.Context, parentPartID uint) ([]*bomitem.BomItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
		SELECT `+bomItemColumns+`
		FROM bom_items
		WHERE parent_part_id = $1
		ORDER BY id
	`, parentPartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*bomitem.BomItem
	for rows.Next() {
		var m models.BomItem
		if err := rows.Scan(
			&m.ID,
			&m.ParentPartID,
			&m.SubPartID,
			&m.Quantity,
			&m.Overage,
			&m.Reference,
			&m.Note,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item, err := toDomainBomItem(&m)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BomItemRepository) CountByParent(ctx context.Context, parentPartID uint) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM bom_items WHERE parent_part_id = $1`, parentPartID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BomItemRepository) ReplaceForParent(ctx context.Context, parentPartID uint, items []*bomitem.BomItem) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	// Lock the parent row first so two replacements of the same BOM cannot
	// interleave their delete/insert sequences.
	if _, err := tx.Exec(ctx, `SELECT id FROM parts WHERE id = $1 FOR UPDATE`, parentPartID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bom_items WHERE parent_part_id = $1`, parentPartID); err != nil {
		return err
	}

	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO bom_items (parent_part_id, sub_part_id, quantity, overage, reference, note)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			parentPartID,
			item.SubPartID(),
			item.Quantity().String(),
			item.Overage(),
			item.Reference(),
			item.Note(),
		)
		if err != nil {
			return mapPgError(err)
		}
	}
	return nil
}
