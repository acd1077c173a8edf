package traceability_test

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// ── Repos en memoria ──────────────────────────────────────────────────────────

type memBatches struct{ byID map[string]*entity.Batch }

func (m *memBatches) Create(_ context.Context, b *entity.Batch) error { m.byID[b.ID] = b; return nil }
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
func (m *memBatches) Update(_ context.Context, b *entity.Batch) error { m.byID[b.ID] = b; return nil }
func (m *memBatches) UpdateQRCode(_ context.Context, id, qr string) error {
	m.byID[id].QRCode = qr
	return nil
}
func (m *memBatches) Delete(_ context.Context, id string) error { delete(m.byID, id); return nil }
func (m *memBatches) List(context.Context, repository.BatchFilter) ([]*entity.Batch, int, error) {
	return nil, 0, nil
}

type memCompanies struct{ byID map[string]*entity.Company }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error { m.byID[c.ID] = c; return nil }
func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.byID[id], nil
}
func (m *memCompanies) GetByDocument(context.Context, string) (*entity.Company, error) { return nil, nil }
func (m *memCompanies) Update(context.Context, *entity.Company) error                  { return nil }
func (m *memCompanies) SetActive(context.Context, string, bool) error                  { return nil }
func (m *memCompanies) List(context.Context, repository.CompanyFilter) ([]*entity.Company, int, error) {
	return nil, 0, nil
}

type memProducts struct{ byID map[string]*entity.Product }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error { m.byID[p.ID] = p; return nil }
func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.byID[id], nil
}
func (m *memProducts) GetBySKU(context.Context, string) (*entity.Product, error) { return nil, nil }
func (m *memProducts) Update(context.Context, *entity.Product) error             { return nil }
func (m *memProducts) SetActive(context.Context, string, bool) error             { return nil }
func (m *memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

type memMovements struct {
	mu   sync.Mutex
	rows []*entity.Movement
	seq  int64
}

func (m *memMovements) Create(_ context.Context, mov *entity.Movement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	mov.Seq = m.seq
	m.rows = append(m.rows, mov)
	return nil
}

// ListByBatch devuelve en orden de inserción: el ordenamiento es responsabilidad de la cadena.
func (m *memMovements) ListByBatch(_ context.Context, batchID string) ([]*entity.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Movement, 0)
	for _, r := range m.rows {
		if r.BatchID == batchID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Movement
	for _, r := range m.rows {
		if f.Type != "" && string(r.Type) != f.Type {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memMovements) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// stagedMovements acumula inserciones hasta el commit.
type stagedMovements struct {
	*memMovements
	pending []*entity.Movement
}

func (s *stagedMovements) Create(_ context.Context, mov *entity.Movement) error {
	s.pending = append(s.pending, mov)
	return nil
}

// fakeTx aplica las escrituras solo si fn no devuelve error.
type fakeTx struct {
	batches   *memBatches
	companies *memCompanies
	movements *memMovements
	failWith  error
}

func (f *fakeTx) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	companyRepo repository.CompanyRepository,
	movRepo repository.MovementRepository,
) error) error {
	if f.failWith != nil {
		return f.failWith
	}
	staged := &stagedMovements{memMovements: f.movements}
	if err := fn(f.batches, f.companies, staged); err != nil {
		return err
	}
	for _, m := range slices.Clone(staged.pending) {
		if err := f.movements.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
