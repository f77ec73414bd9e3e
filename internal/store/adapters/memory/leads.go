package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type leadRepo struct{ db *DB }

func copyLead(l *leadRow) *repository.Lead {
	cp := l.Lead
	cp.Tags = cloneStrings(l.Tags)
	if l.OwnerID != nil {
		o := *l.OwnerID
		cp.OwnerID = &o
	}
	return &cp
}

func (r *leadRepo) GetByID(ctx context.Context, id string) (*repository.Lead, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	l, ok := r.db.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyLead(l), nil
}

func (r *leadRepo) Create(ctx context.Context, in repository.CreateLeadInput) (*repository.Lead, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	status := in.Status
	if status == "" {
		status = repository.LeadNew
	}
	l := &leadRow{
		Lead: repository.Lead{
			ID:        newID(),
			Name:      in.Name,
			Email:     strings.TrimSpace(in.Email),
			Phone:     in.Phone,
			Company:   in.Company,
			Country:   in.Country,
			Type:      in.Type,
			Message:   in.Message,
			Tags:      repository.MergeTags(in.Tags),
			Status:    status,
			OwnerID:   in.OwnerID,
			CreatedAt: r.db.now(),
		},
		seq: r.db.nextSeq(),
	}
	r.db.leads[l.ID] = l
	return copyLead(l), nil
}

func (r *leadRepo) FindLatestByEmailAndType(ctx context.Context, email string, t repository.LeadType) (*repository.Lead, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	norm := repository.NormalizeEmail(email)
	var best *leadRow
	for _, l := range r.db.leads {
		if l.Type != t || repository.NormalizeEmail(l.Email) != norm {
			continue
		}
		if best == nil || newer(l, best) {
			best = l
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return copyLead(best), nil
}

func newer(a, b *leadRow) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.seq > b.seq
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *leadRepo) Update(ctx context.Context, id string, p repository.LeadPatch) (*repository.Lead, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	l, ok := r.db.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Email != nil {
		l.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Company != nil {
		l.Company = *p.Company
	}
	if p.Country != nil {
		l.Country = *p.Country
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Message != nil {
		l.Message = *p.Message
	}
	if p.Tags != nil {
		l.Tags = repository.MergeTags(p.Tags)
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.OwnerID != nil {
		o := *p.OwnerID
		l.OwnerID = &o
	}
	return copyLead(l), nil
}

func (r *leadRepo) List(ctx context.Context, f repository.LeadFilter) ([]repository.Lead, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	email := repository.NormalizeEmail(f.Email)
	rows := make([]*leadRow, 0, len(r.db.leads))
	for _, l := range r.db.leads {
		if q != "" && !containsAny(q, l.Name, l.Email, l.Company) {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Type != "" && l.Type != f.Type {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.CreatedAt.After(*f.To) {
			continue
		}
		if email != "" && repository.NormalizeEmail(l.Email) != email {
			continue
		}
		if f.Tag != "" && !l.HasTag(f.Tag) {
			continue
		}
		if f.OwnerID != "" && (l.OwnerID == nil || *l.OwnerID != f.OwnerID) {
			continue
		}
		rows = append(rows, l)
	}
	sort.Slice(rows, func(i, j int) bool { return newer(rows[i], rows[j]) })

	out := make([]repository.Lead, 0, len(rows))
	for _, l := range rows {
		out = append(out, *copyLead(l))
	}
	return out, nil
}

func (r *leadRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.leads, id)
	return nil
}

func (r *leadRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n := 0
	for _, id := range ids {
		if _, ok := r.db.leads[id]; ok {
			delete(r.db.leads, id)
			n++
		}
	}
	return n, nil
}

func (r *leadRepo) Count(ctx context.Context, f repository.LeadCountFilter) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for _, l := range r.db.leads {
		if f.Type != "" && l.Type != f.Type {
			continue
		}
		if f.Since != nil && l.CreatedAt.Before(*f.Since) {
			continue
		}
		n++
	}
	return n, nil
}
