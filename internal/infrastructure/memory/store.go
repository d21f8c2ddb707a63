// Package memory implementa los puertos de persistencia en memoria. Sirve como driver de
// desarrollo (STORE_DRIVER=memory) y como base de los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// data estado completo del almacén. Las entidades se guardan por valor.
type data struct {
	products   map[string]entity.Product
	movements  []entity.InventoryMovement
	sales      map[int64]entity.Sale
	receptions map[int64]entity.Reception
	orders     map[int64]entity.PurchaseOrder
	suppliers  map[int64]entity.Supplier
	seq        sequences
}

type sequences struct {
	movement, sale, saleLine, reception, receptionLine, order, orderLine, supplier int64
}

func newData() *data {
	return &data{
		products:   make(map[string]entity.Product),
		sales:      make(map[int64]entity.Sale),
		receptions: make(map[int64]entity.Reception),
		orders:     make(map[int64]entity.PurchaseOrder),
		suppliers:  make(map[int64]entity.Supplier),
	}
}

// clone copia superficial de mapas y slices; las líneas de cada agregado no se mutan en sitio.
func (d *data) clone() *data {
	c := &data{
		products:   make(map[string]entity.Product, len(d.products)),
		movements:  append([]entity.InventoryMovement(nil), d.movements...),
		sales:      make(map[int64]entity.Sale, len(d.sales)),
		receptions: make(map[int64]entity.Reception, len(d.receptions)),
		orders:     make(map[int64]entity.PurchaseOrder, len(d.orders)),
		suppliers:  make(map[int64]entity.Supplier, len(d.suppliers)),
		seq:        d.seq,
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.sales {
		c.sales[k] = v
	}
	for k, v := range d.receptions {
		c.receptions[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	return c
}

// scope da acceso al estado: el confirmado (Store) o la copia de trabajo de una transacción.
type scope interface {
	read(fn func(d *data) error) error
	write(fn func(d *data) error) error
}

// Store almacén en memoria. Las unidades de trabajo se serializan con txMu (equivale a bloquear
// todas las filas); el rollback descarta la copia de trabajo.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newData()}
}

func (s *Store) read(fn func(d *data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write fuera de transacción; toma txMu para no perderse al confirmar una unidad de trabajo concurrente.
func (s *Store) write(fn func(d *data) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

type txScope struct {
	d *data
}

func (t *txScope) read(fn func(d *data) error) error  { return fn(t.d) }
func (t *txScope) write(fn func(d *data) error) error { return fn(t.d) }

// Run ejecuta fn sobre una copia de trabajo y la confirma solo si fn no falla y ctx sigue vivo.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	tx := &txScope{d: work}
	repos := inventory.TxRepos{
		Products:   &ProductRepository{sc: tx},
		Movements:  &InventoryMovementRepository{sc: tx},
		Sales:      &SaleRepository{sc: tx},
		Receptions: &ReceptionRepository{sc: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// Products repositorio de productos sobre el estado confirmado.
func (s *Store) Products() *ProductRepository { return &ProductRepository{sc: s} }

// Movements repositorio del kardex sobre el estado confirmado.
func (s *Store) Movements() *InventoryMovementRepository { return &InventoryMovementRepository{sc: s} }

// Sales repositorio de ventas.
func (s *Store) Sales() *SaleRepository { return &SaleRepository{sc: s} }

// Receptions repositorio de recepciones.
func (s *Store) Receptions() *ReceptionRepository { return &ReceptionRepository{sc: s} }

// PurchaseOrders repositorio de órdenes de compra.
func (s *Store) PurchaseOrders() *PurchaseOrderRepository { return &PurchaseOrderRepository{sc: s} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepository { return &SupplierRepository{sc: s} }

// Reports consultas de reportes.
func (s *Store) Reports() *ReportRepository { return &ReportRepository{sc: s} }
