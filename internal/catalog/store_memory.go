package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	products map[int]Product
	stock    map[int]int
}

func NewMemStore() *MemStore {
	return &MemStore{
		products: map[int]Product{},
		stock:    map[int]int{},
	}
}

// NewSeededMemStore returns a store with a small demo assortment.
func NewSeededMemStore() *MemStore {
	s := NewMemStore()
	s.Put(Product{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: "https://images.example.com/shoes/1.jpg"}, 3)
	s.Put(Product{ID: 2, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 139.9, Image: "https://images.example.com/shoes/2.jpg"}, 5)
	s.Put(Product{ID: 3, Title: "Tênis Adidas Duramo Lite 2.0", Price: 219.9, Image: "https://images.example.com/shoes/3.jpg"}, 2)
	s.Put(Product{ID: 4, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 139.9, Image: "https://images.example.com/shoes/4.jpg"}, 1)
	return s
}

// Put inserts or replaces a product together with its stock amount.
func (s *MemStore) Put(p Product, stock int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	s.stock[p.ID] = stock
}

func (s *MemStore) SetStock(id, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[id] = amount
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok, nil
}

func (s *MemStore) GetStock(ctx context.Context, id int) (Stock, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amount, ok := s.stock[id]
	if !ok {
		return Stock{}, false, nil
	}
	return Stock{ID: id, Amount: amount}, true, nil
}
