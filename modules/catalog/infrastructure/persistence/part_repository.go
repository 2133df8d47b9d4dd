package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/infrastructure/persistence/models"
	"github.com/partlane/partlane/pkg/composables"
	"github.com/partlane/partlane/pkg/repo"
)

const partColumns = `id, ipn, name, description, units, trackable, assembly, component, active, bom_validated, created_at, updated_at`

type PartRepository struct{}

func NewPartRepository() part.Repository {
	return &PartRepository{}
}

func (r *PartRepository) GetByID(ctx context.Context, id uint) (*part.Part, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
	return scanPart(row)
}

func (r *PartRepository) GetByIPN(ctx context.Context, ipn string) (*part.Part, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE lower(ipn) = lower($1)`, strings.TrimSpace(ipn))
	return scanPart(row)
}

func (r *PartRepository) GetPaginated(ctx context.Context, params *part.FindParams) ([]*part.Part, error) {
	if params == nil {
		params = &part.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where := "TRUE"
	args := []any{}
	if q := strings.TrimSpace(params.Query); q != "" {
		where = "(name ILIKE $1 OR ipn ILIKE $1 OR description ILIKE $1)"
		args = append(args, "%"+q+"%")
	}

	query := repo.Join(
		`SELECT `+partColumns+` FROM parts WHERE `+where+` ORDER BY name`,
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

func (r *PartRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM parts`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PartRepository) Create(ctx context.Context, p *part.Part) (*part.Part, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO parts (ipn, name, description, units, trackable, assembly, component, active, bom_validated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+partColumns,
		p.IPN(), p.Name(), p.Description(), p.Units(),
		p.Trackable(), p.Assembly(), p.Component(), p.Active(), p.BomValidated(),
	)
	created, err := scanPart(row)
	if err != nil {
		return nil, mapPgError(err)
	}
	return created, nil
}

func (r *PartRepository) SetBomValidated(ctx context.Context, id uint, validated bool) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE parts SET bom_validated = $2, updated_at = now() WHERE id = $1`, id, validated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return part.ErrNotFound
	}
	return nil
}

func (r *PartRepository) AllowedComponentsOf(ctx context.Context, parentID uint) ([]*part.Part, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	// Excludes the parent itself and every assembly that already uses the
	// parent, directly or transitively; those would close a cycle.
	rows, err := tx.Query(ctx, `
		WITH RECURSIVE used_in AS (
			SELECT parent_part_id FROM bom_items WHERE sub_part_id = $1
			UNION
			SELECT b.parent_part_id
			FROM bom_items b
			JOIN used_in u ON b.sub_part_id = u.parent_part_id
		)
		SELECT `+partColumns+`
		FROM parts
		WHERE component AND active
		  AND id <> $1
		  AND id NOT IN (SELECT parent_part_id FROM used_in)
		ORDER BY name
	`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

func (r *PartRepository) IsAncestor(ctx context.Context, candidateID, parentID uint) (bool, error) {
	if candidateID == parentID {
		return true, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	// The candidate is an ancestor when the parent is reachable through the
	// candidate's component tree. Traversal is bounded by the graph depth
	// because committed BOMs are acyclic by construction.
	var exists bool
	err = tx.QueryRow(ctx, `
		WITH RECURSIVE components AS (
			SELECT sub_part_id FROM bom_items WHERE parent_part_id = $1
			UNION
			SELECT b.sub_part_id
			FROM bom_items b
			JOIN components c ON b.parent_part_id = c.sub_part_id
		)
		SELECT EXISTS (SELECT 1 FROM components WHERE sub_part_id = $2)
	`, candidateID, parentID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanPart(row pgx.Row) (*part.Part, error) {
	var m models.Part
	if err := row.Scan(
		&m.ID,
		&m.IPN,
		&m.Name,
		&m.Description,
		&m.Units,
		&m.Trackable,
		&m.Assembly,
		&m.Component,
		&m.Active,
		&m.BomValidated,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, part.ErrNotFound
		}
		return nil, err
	}
	return toDomainPart(&m), nil
}

func collectParts(rows pgx.Rows) ([]*part.Part, error) {
	var out []*part.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
