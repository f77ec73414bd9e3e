package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type dealerRepo struct{ db *DB }

func (r *dealerRepo) GetByID(ctx context.Context, id string) (*repository.Dealer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	d, ok := r.db.dealers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := d.Dealer
	return &cp, nil
}

func (r *dealerRepo) FindByContactEmail(ctx context.Context, email string) (*repository.Dealer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	norm := repository.NormalizeEmail(email)
	var best *dealerRow
	for _, d := range r.db.dealers {
		if repository.NormalizeEmail(d.ContactEmail) != norm {
			continue
		}
		if best == nil || d.UpdatedAt.After(best.UpdatedAt) ||
			(d.UpdatedAt.Equal(best.UpdatedAt) && d.seq > best.seq) {
			best = d
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	cp := best.Dealer
	return &cp, nil
}

func (r *dealerRepo) Create(ctx context.Context, in repository.CreateDealerInput) (*repository.Dealer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.contactEmailTaken(in.ContactEmail, "") {
		return nil, repository.ErrConflict
	}
	status := in.Status
	if status == "" {
		status = repository.DealerPending
	}
	d := &dealerRow{
		Dealer: repository.Dealer{
			ID:           newID(),
			Org:          in.Org,
			ContactName:  in.ContactName,
			ContactEmail: strings.TrimSpace(in.ContactEmail),
			Region:       in.Region,
			Status:       status,
			Users:        in.Users,
			UpdatedAt:    r.db.now(),
		},
		seq: r.db.nextSeq(),
	}
	r.db.dealers[d.ID] = d
	cp := d.Dealer
	return &cp, nil
}

func (r *dealerRepo) Update(ctx context.Context, id string, p repository.DealerPatch) (*repository.Dealer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.dealers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.ContactEmail != nil && r.contactEmailTaken(*p.ContactEmail, id) {
		return nil, repository.ErrConflict
	}
	if p.Org != nil {
		d.Org = *p.Org
	}
	if p.ContactName != nil {
		d.ContactName = *p.ContactName
	}
	if p.ContactEmail != nil {
		d.ContactEmail = strings.TrimSpace(*p.ContactEmail)
	}
	if p.Region != nil {
		d.Region = *p.Region
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Users != nil {
		d.Users = *p.Users
	}
	d.UpdatedAt = r.db.now()
	d.seq = r.db.nextSeq()
	cp := d.Dealer
	return &cp, nil
}

func (r *dealerRepo) List(ctx context.Context, f repository.DealerFilter) ([]repository.Dealer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	rows := make([]*dealerRow, 0, len(r.db.dealers))
	for _, d := range r.db.dealers {
		if q != "" && !containsAny(q, d.Org, d.ContactName, d.ContactEmail, d.Region) {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.Region != "" && d.Region != f.Region {
			continue
		}
		rows = append(rows, d)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
	})
	out := make([]repository.Dealer, 0, len(rows))
	for _, d := range rows {
		out = append(out, d.Dealer)
	}
	return out, nil
}

func (r *dealerRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.dealers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.dealers, id)
	return nil
}

func (r *dealerRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n := 0
	for _, id := range ids {
		if _, ok := r.db.dealers[id]; ok {
			delete(r.db.dealers, id)
			n++
		}
	}
	return n, nil
}

func (r *dealerRepo) CountByStatus(ctx context.Context, status repository.DealerStatus) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for _, d := range r.db.dealers {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

func containsAny(q string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// contactEmailTaken: hay a lo sumo un dealer por email de contacto
// normalizado. El vacío no cuenta. Requiere el lock tomado.
func (r *dealerRepo) contactEmailTaken(email, exceptID string) bool {
	norm := repository.NormalizeEmail(email)
	if norm == "" {
		return false
	}
	for id, d := range r.db.dealers {
		if id != exceptID && repository.NormalizeEmail(d.ContactEmail) == norm {
			return true
		}
	}
	return false
}
