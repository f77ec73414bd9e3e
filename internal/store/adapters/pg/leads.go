package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type leadRepo struct{ pool *pgxpool.Pool }

const leadColumns = `id, name, email, phone, company, country, type, message, tags, status, owner_id, created_at`

func scanLead(row pgx.Row) (*repository.Lead, error) {
	var l repository.Lead
	if err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Country,
		&l.Type, &l.Message, &l.Tags, &l.Status, &l.OwnerID, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Tags = emptyIfNil(l.Tags)
	return &l, nil
}

func (r *leadRepo) GetByID(ctx context.Context, id string) (*repository.Lead, error) {
	l, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get lead", err)
	}
	return l, nil
}

func (r *leadRepo) Create(ctx context.Context, in repository.CreateLeadInput) (*repository.Lead, error) {
	status := in.Status
	if status == "" {
		status = repository.LeadNew
	}
	const q = `
		INSERT INTO leads (id, name, email, phone, company, country, type, message, tags, status, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + leadColumns
	l, err := scanLead(r.pool.QueryRow(ctx, q, newID(), in.Name, strings.TrimSpace(in.Email),
		in.Phone, in.Company, in.Country, in.Type, in.Message, repository.MergeTags(in.Tags),
		status, in.OwnerID, time.Now().UTC()))
	if err != nil {
		return nil, mapErr("create lead", err)
	}
	return l, nil
}

func (r *leadRepo) FindLatestByEmailAndType(ctx context.Context, email string, t repository.LeadType) (*repository.Lead, error) {
	const q = `SELECT ` + leadColumns + ` FROM leads
		WHERE lower(email) = $1 AND type = $2
		ORDER BY created_at DESC LIMIT 1`
	l, err := scanLead(r.pool.QueryRow(ctx, q, repository.NormalizeEmail(email), t))
	if err != nil {
		return nil, mapErr("find latest lead", err)
	}
	return l, nil
}

func (r *leadRepo) Update(ctx context.Context, id string, p repository.LeadPatch) (*repository.Lead, error) {
	var set setList
	if p.Name != nil {
		set.add("name", *p.Name)
	}
	if p.Email != nil {
		set.add("email", strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil {
		set.add("phone", *p.Phone)
	}
	if p.Company != nil {
		set.add("company", *p.Company)
	}
	if p.Country != nil {
		set.add("country", *p.Country)
	}
	if p.Type != nil {
		set.add("type", *p.Type)
	}
	if p.Message != nil {
		set.add("message", *p.Message)
	}
	if p.Tags != nil {
		set.add("tags", repository.MergeTags(p.Tags))
	}
	if p.Status != nil {
		set.add("status", *p.Status)
	}
	if p.OwnerID != nil {
		set.add("owner_id", *p.OwnerID)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}

	args := append(set.args, id)
	q := `UPDATE leads SET ` + set.sql() + ` WHERE id = $` + itoa(len(args)) + ` RETURNING ` + leadColumns
	l, err := scanLead(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, mapErr("update lead", err)
	}
	return l, nil
}

func (r *leadRepo) List(ctx context.Context, f repository.LeadFilter) ([]repository.Lead, error) {
	var where whereList
	if q := strings.TrimSpace(f.Query); q != "" {
		p := likePattern(q)
		where.add("(name ILIKE ? OR email ILIKE ? OR company ILIKE ?)", p, p, p)
	}
	if f.Status != "" {
		where.add("status = ?", f.Status)
	}
	if f.Type != "" {
		where.add("type = ?", f.Type)
	}
	if f.From != nil {
		where.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		where.add("created_at <= ?", *f.To)
	}
	if f.Email != "" {
		where.add("lower(email) = ?", repository.NormalizeEmail(f.Email))
	}
	if f.Tag != "" {
		where.add("? = ANY(tags)", f.Tag)
	}
	if f.OwnerID != "" {
		where.add("owner_id = ?", f.OwnerID)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads`+where.sql()+` ORDER BY created_at DESC`, where.args...)
	if err != nil {
		return nil, mapErr("list leads", err)
	}
	defer rows.Close()

	out := []repository.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, mapErr("scan lead", err)
		}
		out = append(out, *l)
	}
	return out, mapErr("list leads", rows.Err())
}

func (r *leadRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete lead", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *leadRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, mapErr("delete leads", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *leadRepo) Count(ctx context.Context, f repository.LeadCountFilter) (int, error) {
	var where whereList
	if f.Type != "" {
		where.add("type = ?", f.Type)
	}
	if f.Since != nil {
		where.add("created_at >= ?", *f.Since)
	}
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM leads`+where.sql(), where.args...).Scan(&n)
	return n, mapErr("count leads", err)
}
