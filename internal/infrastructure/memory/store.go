// Package memory implementa los repositorios sobre mapas en memoria.
// Se usa con STORAGE_DRIVER=memory y como doble de prueba de los casos de uso.
package memory

import (
	"sync"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// Store datos compartidos por todos los repositorios en memoria.
// mu protege los mapas; txMu serializa las transacciones de pedidos.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	categories    map[string]entity.Category
	countries     map[string]entity.Country
	manufacturers map[string]entity.Manufacturer
	products      map[string]entity.Product
	customers     map[string]entity.Customer
	orders        map[string]entity.Order
	sessions      map[string]entity.Session
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories:    make(map[string]entity.Category),
		countries:     make(map[string]entity.Country),
		manufacturers: make(map[string]entity.Manufacturer),
		products:      make(map[string]entity.Product),
		customers:     make(map[string]entity.Customer),
		orders:        make(map[string]entity.Order),
		sessions:      make(map[string]entity.Session),
	}
}

// Repositories agrupa los repositorios sobre un mismo Store.
type Repositories struct {
	Categories    *CategoryRepository
	Countries     *CountryRepository
	Manufacturers *ManufacturerRepository
	Products      *ProductRepository
	Customers     *CustomerRepository
	Orders        *OrderRepository
	Sessions      *SessionRepository
	Tx            *TxRunner
}

// NewRepositories construye todos los repositorios sobre s.
func NewRepositories(s *Store) Repositories {
	return Repositories{
		Categories:    &CategoryRepository{s: s},
		Countries:     &CountryRepository{s: s},
		Manufacturers: &ManufacturerRepository{s: s},
		Products:      &ProductRepository{s: s},
		Customers:     &CustomerRepository{s: s},
		Orders:        &OrderRepository{s: s},
		Sessions:      &SessionRepository{s: s},
		Tx:            &TxRunner{s: s},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
