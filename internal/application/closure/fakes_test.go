package closure_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type memClosures struct {
	closures map[string]*entity.Closure
	items    map[string][]*entity.ClosureItem
	failOn   string // "items" fuerza error en CreateItems
}

func newMemClosures() *memClosures {
	return &memClosures{closures: map[string]*entity.Closure{}, items: map[string][]*entity.ClosureItem{}}
}

func (m *memClosures) Create(_ context.Context, c *entity.Closure) error {
	for _, ex := range m.closures {
		if ex.StationID == c.StationID && ex.NumeroZ == c.NumeroZ {
			return fmt.Errorf("unique: %w", domain.ErrDuplicate)
		}
	}
	cp := *c
	m.closures[c.ID] = &cp
	return nil
}

func (m *memClosures) CreateItems(_ context.Context, items []*entity.ClosureItem) error {
	if m.failOn == "items" {
		return errors.New("copy falló")
	}
	for _, it := range items {
		m.items[it.ClosureID] = append(m.items[it.ClosureID], it)
	}
	return nil
}

func (m *memClosures) GetByID(_ context.Context, id string) (*entity.Closure, error) {
	return m.closures[id], nil
}

func (m *memClosures) GetItems(_ context.Context, id string) ([]*entity.ClosureItem, error) {
	list := append([]*entity.ClosureItem(nil), m.items[id]...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Section != list[j].Section {
			return list[i].Section < list[j].Section
		}
		return list[i].Position < list[j].Position
	})
	return list, nil
}

func (m *memClosures) ExistsByNumero(_ context.Context, stationID string, numeroZ int) (bool, error) {
	for _, c := range m.closures {
		if c.StationID == stationID && c.NumeroZ == numeroZ {
			return true, nil
		}
	}
	return false, nil
}

func (m *memClosures) List(_ context.Context, f repository.ClosureFilter) ([]*entity.Closure, int, error) {
	var list []*entity.Closure
	for _, c := range m.closures {
		if f.StationID == "" || c.StationID == f.StationID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NumeroZ < list[j].NumeroZ })
	total := len(list)
	if f.Offset >= len(list) {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[f.Offset:end], total, nil
}

// memTx simula la transacción: acumula en un repo temporal y vuelca solo si fn no falla.
type memTx struct {
	repo *memClosures
}

func (t *memTx) RunClosure(ctx context.Context, fn func(repo repository.ClosureRepository) error) error {
	staged := newMemClosures()
	staged.failOn = t.repo.failOn
	for k, v := range t.repo.closures {
		staged.closures[k] = v
	}
	if err := fn(staged); err != nil {
		return err
	}
	t.repo.closures = staged.closures
	for k, v := range staged.items {
		t.repo.items[k] = v
	}
	return nil
}

type memStations map[string]*entity.Station

func (m memStations) Create(_ context.Context, s *entity.Station) error {
	m[s.ID] = s
	return nil
}

func (m memStations) GetByID(_ context.Context, id string) (*entity.Station, error) {
	return m[id], nil
}

func (m memStations) GetByCode(_ context.Context, code string) (*entity.Station, error) {
	for _, s := range m {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}

func (m memStations) List(_ context.Context, _, _ int) ([]*entity.Station, error) {
	var list []*entity.Station
	for _, s := range m {
		list = append(list, s)
	}
	return list, nil
}

// plainText devuelve los bytes tal cual.
type plainText struct{}

func (plainText) FromUpload(_ string, data []byte) (string, error) { return string(data), nil }

// hashXML huella determinística sobre el contenido parseado.
type hashXML struct{}

func (hashXML) RenderClosureXML(doc *appclosure.Document) ([]byte, error) {
	return []byte(fmt.Sprintf("<CierreZ numero=\"%d\"/>", *doc.Cierre.Header.NumeroZ)), nil
}

func (hashXML) Fingerprint(doc *appclosure.Document) (string, error) {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%+v|%v|%v", doc.StationCode, doc.Cierre.Header.TotalVentas, doc.Cierre.Ventas, doc.Cierre.Tanques)))
	return hex.EncodeToString(sum[:]), nil
}

type fixedSchema struct{ err error }

func (s fixedSchema) ValidateClosure([]byte) error { return s.err }

type stubRenderer struct{}

func (stubRenderer) RenderClosurePDF(context.Context, *appclosure.Document) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func (stubRenderer) RenderClosureXLSX(*appclosure.Document) ([]byte, error) {
	return []byte("PK-stub"), nil
}
