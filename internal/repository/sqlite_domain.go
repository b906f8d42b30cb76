package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
)

// SQLiteDomainRepo implements DomainRepo using a SQLite database.
type SQLiteDomainRepo struct {
	db db.DBTX
}

func NewSQLiteDomainRepo(conn db.DBTX) *SQLiteDomainRepo {
	return &SQLiteDomainRepo{db: conn}
}

const domainColumns = `id, name, color, order_index, is_active`

func (r *SQLiteDomainRepo) Create(ctx context.Context, d *domain.Domain) error {
	query := `INSERT INTO domains (` + domainColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.Name, d.Color, d.Order, boolToInt(d.IsActive))
	if err != nil {
		return fmt.Errorf("inserting domain: %w", err)
	}
	return nil
}

func (r *SQLiteDomainRepo) GetByID(ctx context.Context, id string) (*domain.Domain, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+domainColumns+` FROM domains WHERE id = ?`, id)
	return r.scanDomain(row)
}

func (r *SQLiteDomainRepo) GetByName(ctx context.Context, name string) (*domain.Domain, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+domainColumns+` FROM domains WHERE LOWER(name) = LOWER(?)`, name)
	return r.scanDomain(row)
}

func (r *SQLiteDomainRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Domain, error) {
	query := `SELECT ` + domainColumns + ` FROM domains ORDER BY order_index, name`
	if activeOnly {
		query = `SELECT ` + domainColumns + ` FROM domains WHERE is_active = 1 ORDER BY order_index, name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}
	defer rows.Close()

	var domains []*domain.Domain
	for rows.Next() {
		d, err := r.scanDomain(rows)
		if err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domains: %w", err)
	}
	return domains, nil
}

func (r *SQLiteDomainRepo) Update(ctx context.Context, d *domain.Domain) error {
	query := `UPDATE domains SET name = ?, color = ?, order_index = ?, is_active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Color, d.Order, boolToInt(d.IsActive), d.ID)
	if err != nil {
		return fmt.Errorf("updating domain: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("domain %s: %w", d.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDomainRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM domains`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting domains: %w", err)
	}
	return n, nil
}

func (r *SQLiteDomainRepo) scanDomain(row rowScanner) (*domain.Domain, error) {
	var d domain.Domain
	var active int
	if err := row.Scan(&d.ID, &d.Name, &d.Color, &d.Order, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("domain: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning domain: %w", err)
	}
	d.IsActive = intToBool(active)
	return &d, nil
}
