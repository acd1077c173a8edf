package usecase_test

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

type memCompanies struct{ byID map[string]*entity.Company }

func newMemCompanies() *memCompanies { return &memCompanies{byID: map[string]*entity.Company{}} }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.byID[id], nil
}
func (m *memCompanies) GetByDocument(_ context.Context, doc string) (*entity.Company, error) {
	for _, c := range m.byID {
		if c.Document == doc {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCompanies) SetActive(_ context.Context, id string, active bool) error {
	c, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = active
	return nil
}
func (m *memCompanies) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, int, error) {
	var out []*entity.Company
	for _, c := range m.byID {
		if f.ActiveOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

type memProducts struct{ byID map[string]*entity.Product }

func newMemProducts() *memProducts { return &memProducts{byID: map[string]*entity.Product{}} }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.byID[p.ID] = p
	return nil
}
func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.byID[id], nil
}
func (m *memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range m.byID {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.byID[p.ID] = p
	return nil
}
func (m *memProducts) SetActive(_ context.Context, id string, active bool) error {
	m.byID[id].Active = active
	return nil
}
func (m *memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, int, error) {
	out := make([]*entity.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, len(out), nil
}

type memBatches struct{ byID map[string]*entity.Batch }

func newMemBatches() *memBatches { return &memBatches{byID: map[string]*entity.Batch{}} }

func (m *memBatches) Create(_ context.Context, b *entity.Batch) error {
	m.byID[b.ID] = b
	return nil
}
func (m *memBatches) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return m.byID[id], nil
}
func (m *memBatches) GetByNumber(_ context.Context, n string) (*entity.Batch, error) {
	for _, b := range m.byID {
		if b.BatchNumber == n {
			return b, nil
		}
	}
	return nil, nil
}
func (m *memBatches) Update(_ context.Context, b *entity.Batch) error {
	m.byID[b.ID] = b
	return nil
}
func (m *memBatches) UpdateQRCode(_ context.Context, id, qr string) error {
	b, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.QRCode = qr
	return nil
}
func (m *memBatches) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
func (m *memBatches) List(context.Context, repository.BatchFilter) ([]*entity.Batch, int, error) {
	return nil, 0, nil
}

type memMovements struct{ byBatch map[string][]*entity.Movement }

func newMemMovements() *memMovements {
	return &memMovements{byBatch: map[string][]*entity.Movement{}}
}

func (m *memMovements) Create(_ context.Context, mov *entity.Movement) error {
	m.byBatch[mov.BatchID] = append(m.byBatch[mov.BatchID], mov)
	return nil
}
func (m *memMovements) ListByBatch(_ context.Context, batchID string) ([]*entity.Movement, error) {
	return m.byBatch[batchID], nil
}
func (m *memMovements) List(context.Context, repository.MovementFilter) ([]*entity.Movement, int, error) {
	return nil, 0, nil
}

type memTemplates struct{ byID map[string]*entity.LabelTemplate }

func (m *memTemplates) Create(_ context.Context, t *entity.LabelTemplate) error {
	m.byID[t.ID] = t
	return nil
}
func (m *memTemplates) GetByID(_ context.Context, id string) (*entity.LabelTemplate, error) {
	return m.byID[id], nil
}
func (m *memTemplates) Update(_ context.Context, t *entity.LabelTemplate) error {
	m.byID[t.ID] = t
	return nil
}
func (m *memTemplates) SetActive(_ context.Context, id string, active bool) error {
	m.byID[id].Active = active
	return nil
}
func (m *memTemplates) List(context.Context, repository.LabelTemplateFilter) ([]*entity.LabelTemplate, int, error) {
	return nil, 0, nil
}

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByGitHubID(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUsers) LinkGitHub(context.Context, string, string, string) error   { return nil }
func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) List(context.Context, repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}
func (m *memUsers) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
