package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type dealerRepo struct{ pool *pgxpool.Pool }

const dealerColumns = `id, org, contact_name, contact_email, region, status, users, updated_at`

func scanDealer(row pgx.Row) (*repository.Dealer, error) {
	var d repository.Dealer
	if err := row.Scan(&d.ID, &d.Org, &d.ContactName, &d.ContactEmail, &d.Region,
		&d.Status, &d.Users, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dealerRepo) GetByID(ctx context.Context, id string) (*repository.Dealer, error) {
	d, err := scanDealer(r.pool.QueryRow(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get dealer", err)
	}
	return d, nil
}

func (r *dealerRepo) FindByContactEmail(ctx context.Context, email string) (*repository.Dealer, error) {
	const q = `SELECT ` + dealerColumns + ` FROM dealers
		WHERE lower(contact_email) = $1
		ORDER BY updated_at DESC LIMIT 1`
	d, err := scanDealer(r.pool.QueryRow(ctx, q, repository.NormalizeEmail(email)))
	if err != nil {
		return nil, mapErr("find dealer by contact email", err)
	}
	return d, nil
}

func (r *dealerRepo) Create(ctx context.Context, in repository.CreateDealerInput) (*repository.Dealer, error) {
	status := in.Status
	if status == "" {
		status = repository.DealerPending
	}
	const q = `
		INSERT INTO dealers (id, org, contact_name, contact_email, region, status, users, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + dealerColumns
	d, err := scanDealer(r.pool.QueryRow(ctx, q, newID(), in.Org, in.ContactName,
		strings.TrimSpace(in.ContactEmail), in.Region, status, in.Users, time.Now().UTC()))
	if err != nil {
		return nil, mapErr("create dealer", err)
	}
	return d, nil
}

func (r *dealerRepo) Update(ctx context.Context, id string, p repository.DealerPatch) (*repository.Dealer, error) {
	var set setList
	if p.Org != nil {
		set.add("org", *p.Org)
	}
	if p.ContactName != nil {
		set.add("contact_name", *p.ContactName)
	}
	if p.ContactEmail != nil {
		set.add("contact_email", strings.TrimSpace(*p.ContactEmail))
	}
	if p.Region != nil {
		set.add("region", *p.Region)
	}
	if p.Status != nil {
		set.add("status", *p.Status)
	}
	if p.Users != nil {
		set.add("users", *p.Users)
	}
	set.add("updated_at", time.Now().UTC())

	args := append(set.args, id)
	q := `UPDATE dealers SET ` + set.sql() + ` WHERE id = $` + itoa(len(args)) + ` RETURNING ` + dealerColumns
	d, err := scanDealer(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, mapErr("update dealer", err)
	}
	return d, nil
}

func (r *dealerRepo) List(ctx context.Context, f repository.DealerFilter) ([]repository.Dealer, error) {
	var where whereList
	if q := strings.TrimSpace(f.Query); q != "" {
		p := likePattern(q)
		where.add("(org ILIKE ? OR contact_name ILIKE ? OR contact_email ILIKE ? OR region ILIKE ?)", p, p, p, p)
	}
	if f.Status != "" {
		where.add("status = ?", f.Status)
	}
	if f.Region != "" {
		where.add("region = ?", f.Region)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+dealerColumns+` FROM dealers`+where.sql()+` ORDER BY updated_at DESC`, where.args...)
	if err != nil {
		return nil, mapErr("list dealers", err)
	}
	defer rows.Close()

	out := []repository.Dealer{}
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return nil, mapErr("scan dealer", err)
		}
		out = append(out, *d)
	}
	return out, mapErr("list dealers", rows.Err())
}

func (r *dealerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dealers WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete dealer", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *dealerRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dealers WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, mapErr("delete dealers", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *dealerRepo) CountByStatus(ctx context.Context, status repository.DealerStatus) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM dealers WHERE status = $1`, status).Scan(&n)
	return n, mapErr("count dealers", err)
}
