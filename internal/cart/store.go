package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"MiniCart/internal/slot"
)

// DefaultKey is the slot key the cart lives under.
const DefaultKey = "cart"

var (
	ErrProductLookup = errors.New("cart: product lookup failed")
	ErrStockLookup   = errors.New("cart: stock lookup failed")
	ErrPersist       = errors.New("cart: persist failed")
)

type Outcome string

const (
	Added      Outcome = "added"
	Updated    Outcome = "updated"
	Unmatched  Outcome = "unmatched"
	Removed    Outcome = "removed"
	NotFound   Outcome = "not_found"
	OutOfStock Outcome = "out_of_stock"
	Failed     Outcome = "failed"
)

// Result describes what a mutation did. Notification is set whenever the
// user was notified; Cart is the snapshot after the operation.
type Result struct {
	Outcome      Outcome       `json:"outcome"`
	Notification *Notification `json:"notification,omitempty"`
	Cart         []Product     `json:"cart"`
}

type ProductCatalog interface {
	GetProduct(ctx context.Context, id int) (Product, error)
}

type StockChecker interface {
	GetStock(ctx context.Context, id int) (Stock, error)
}

type Deps struct {
	Catalog  ProductCatalog
	Stock    StockChecker
	Slot     slot.Slot
	Key      string
	Notifier Notifier
	Metrics  *Metrics
	Log      *zap.Logger
}

// Store is the single owned cart instance. Every successful mutation is
// written to the slot before it becomes visible in memory.
type Store struct {
	catalog  ProductCatalog
	stock    StockChecker
	slot     slot.Slot
	key      string
	notifier Notifier
	metrics  *Metrics
	log      *zap.Logger
	now      func() time.Time

	// opMu serializes mutations end to end, lookups included.
	opMu sync.Mutex

	mu   sync.RWMutex
	cart []Product

	subMu   sync.Mutex
	subs    map[int]func([]Product)
	nextSub int
}

// NewStore loads the cart from the slot. A missing, unreadable or corrupt
// value yields an empty cart.
func NewStore(ctx context.Context, deps Deps) *Store {
	s := &Store{
		catalog:  deps.Catalog,
		stock:    deps.Stock,
		slot:     deps.Slot,
		key:      deps.Key,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		log:      deps.Log,
		now:      time.Now,
		subs:     map[int]func([]Product){},
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.cart = s.load(ctx)
	s.metrics.observeCart(s.cart)
	return s
}

func (s *Store) load(ctx context.Context) []Product {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("cart slot unreadable, starting empty", zap.String("key", s.key), zap.Error(err))
		return []Product{}
	}
	if !ok {
		return []Product{}
	}

	var cart []Product
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.log.Warn("cart slot corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return []Product{}
	}
	if cart == nil {
		return []Product{}
	}
	if !valid(cart) {
		s.log.Warn("cart slot violates invariants, starting empty", zap.String("key", s.key))
		return []Product{}
	}
	return cart
}

// Cart returns a copy of the current entries in insertion order.
func (s *Store) Cart() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.cart)
}

// Subscribe registers fn to receive a snapshot after every successful
// mutation. fn runs while the mutation lock is held and must not call back
// into AddProduct, RemoveProduct or UpdateProductAmount. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func([]Product)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) AddProduct(ctx context.Context, productID int) (Result, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.addProduct(ctx, productID)
	s.metrics.observeOp("add", res.Outcome)
	return res, err
}

func (s *Store) addProduct(ctx context.Context, productID int) (Result, error) {
	cart := s.Cart()

	if i := indexOf(cart, productID); i >= 0 {
		return s.updateAmount(ctx, cart, productID, cart[i].Amount+1)
	}

	p, err := s.catalog.GetProduct(ctx, productID)
	if err == nil && p.ID != productID {
		err = fmt.Errorf("catalog returned id=%d", p.ID)
	}
	if err != nil {
		s.log.Debug("product lookup failed", zap.Int("product_id", productID), zap.Error(err))
		return s.reject(ctx, Failed, KindAddFailed, productID, cart),
			fmt.Errorf("%w: %w", ErrProductLookup, err)
	}

	p.Amount = 1
	next := append(clone(cart), p)

	if err := s.commit(ctx, next); err != nil {
		return s.reject(ctx, Failed, KindAddFailed, productID, cart), err
	}
	return Result{Outcome: Added, Cart: clone(next)}, nil
}

func (s *Store) RemoveProduct(ctx context.Context, productID int) (Result, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.removeProduct(ctx, productID)
	s.metrics.observeOp("remove", res.Outcome)
	return res, err
}

func (s *Store) removeProduct(ctx context.Context, productID int) (Result, error) {
	cart := s.Cart()

	if indexOf(cart, productID) < 0 {
		return s.reject(ctx, NotFound, KindRemoveFailed, productID, cart), nil
	}

	next := make([]Product, 0, len(cart)-1)
	for _, p := range cart {
		if p.ID != productID {
			next = append(next, p)
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return s.reject(ctx, Failed, KindRemoveFailed, productID, cart), err
	}
	return Result{Outcome: Removed, Cart: clone(next)}, nil
}

func (s *Store) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) (Result, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.updateAmount(ctx, s.Cart(), req.ProductID, req.Amount)
	s.metrics.observeOp("update", res.Outcome)
	return res, err
}

// updateAmount checks stock on every call. An id that is not in the cart
// rewrites the cart unchanged and reports Unmatched.
func (s *Store) updateAmount(ctx context.Context, cart []Product, productID, amount int) (Result, error) {
	st, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		s.log.Debug("stock lookup failed", zap.Int("product_id", productID), zap.Error(err))
		return s.reject(ctx, Failed, KindUpdateFailed, productID, cart),
			fmt.Errorf("%w: %w", ErrStockLookup, err)
	}

	if amount <= 0 || amount > st.Amount {
		return s.reject(ctx, OutOfStock, KindOutOfStock, productID, cart), nil
	}

	matched := false
	next := clone(cart)
	for i := range next {
		if next[i].ID == productID {
			next[i].Amount = amount
			matched = true
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return s.reject(ctx, Failed, KindUpdateFailed, productID, cart), err
	}

	if !matched {
		s.log.Info("amount update for product not in cart", zap.Int("product_id", productID))
		return Result{Outcome: Unmatched, Cart: clone(next)}, nil
	}
	return Result{Outcome: Updated, Cart: clone(next)}, nil
}

// commit writes next to the slot and only then swaps it into memory.
func (s *Store) commit(ctx context.Context, next []Product) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		s.log.Error("cart slot write failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()

	s.metrics.observeCart(next)
	s.publish(next)
	return nil
}

func (s *Store) publish(cart []Product) {
	s.subMu.Lock()
	fns := make([]func([]Product), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(clone(cart))
	}
}

func (s *Store) reject(ctx context.Context, outcome Outcome, kind Kind, productID int, cart []Product) Result {
	n := newNotification(kind, productID, s.now())
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
	return Result{Outcome: outcome, Notification: &n, Cart: clone(cart)}
}

// Ping reports whether the backing slot is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.slot.Ping(ctx)
}
