package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/deppfellow/pharmacy-service/internal/server"
	"github.com/jackc/pgx/v5"
)

const pharmacyColumns = `id, name, address, phone_number, license_number`

// PharmacyRepository is the PostgreSQL implementation of PharmacyStore.
type PharmacyRepository struct {
	server *server.Server
}

func NewPharmacyRepository(s *server.Server) *PharmacyRepository {
	return &PharmacyRepository{server: s}
}

func (r *PharmacyRepository) FindByID(ctx context.Context, id int64) (*pharmacy.Pharmacy, error) {
	stmt := `SELECT ` + pharmacyColumns + ` FROM pharmacies WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get pharmacy by id query for id=%d: %w", id, err)
	}

	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[pharmacy.Pharmacy])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect row from table:pharmacies for id=%d: %w", id, err)
	}

	return &p, nil
}

func (r *PharmacyRepository) FindByEquality(ctx context.Context, field, value string) ([]pharmacy.Pharmacy, error) {
	items, _, err := r.ListPaginated(ctx, []EqualityFilter{{Field: field, Value: value}}, 0, 0)
	return items, err
}

// ListPaginated returns one page of matches and the total match count.
// A limit of zero returns every match.
func (r *PharmacyRepository) ListPaginated(ctx context.Context, filters []EqualityFilter, limit, offset int) ([]pharmacy.Pharmacy, int, error) {
	where, args, err := buildWhere(filters)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countStmt := `SELECT COUNT(*) FROM pharmacies` + where
	if err := r.server.DB.Pool.QueryRow(ctx, countStmt, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pharmacies: %w", err)
	}

	stmt := `SELECT ` + pharmacyColumns + ` FROM pharmacies` + where + ` ORDER BY id ASC`
	if limit > 0 {
		stmt += ` LIMIT @limit OFFSET @offset`
		args["limit"] = limit
		args["offset"] = offset
	}

	rows, err := r.server.DB.Pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute list pharmacies query: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[pharmacy.Pharmacy])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect rows from table:pharmacies: %w", err)
	}

	return items, total, nil
}

// buildWhere renders equality filters as a WHERE clause with named args.
// Column names come from the field whitelist, never from the caller verbatim.
func buildWhere(filters []EqualityFilter) (string, pgx.NamedArgs, error) {
	args := pgx.NamedArgs{}
	if len(filters) == 0 {
		return "", args, nil
	}

	conditions := make([]string, 0, len(filters))
	for i, f := range filters {
		if !filterable(f.Field) {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownField, f.Field)
		}
		name := fmt.Sprintf("f%d", i)
		conditions = append(conditions, fmt.Sprintf("%s = @%s", f.Field, name))
		args[name] = f.Value
	}

	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

func (r *PharmacyRepository) Insert(ctx context.Context, p *pharmacy.Pharmacy) error {
	stmt := `
		INSERT INTO
			pharmacies (name, address, phone_number, license_number)
		VALUES
			(@name, @address, @phone_number, @license_number)
		RETURNING id
	`

	err := r.server.DB.Pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"name":           p.Name,
		"address":        p.Address,
		"phone_number":   p.PhoneNumber,
		"license_number": p.LicenseNumber,
	}).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert pharmacy: %w", err)
	}

	return nil
}

func (r *PharmacyRepository) Update(ctx context.Context, p *pharmacy.Pharmacy) error {
	stmt := `
		UPDATE pharmacies
		SET
			name = @name,
			address = @address,
			phone_number = @phone_number,
			license_number = @license_number,
			updated_at = NOW()
		WHERE
			id = @id
	`

	tag, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{
		"id":             p.ID,
		"name":           p.Name,
		"address":        p.Address,
		"phone_number":   p.PhoneNumber,
		"license_number": p.LicenseNumber,
	})
	if err != nil {
		return fmt.Errorf("failed to update pharmacy id=%d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PharmacyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM pharmacies WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pharmacy id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
