package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindAddFailed    Kind = "add_failed"
	KindRemoveFailed Kind = "remove_failed"
	KindOutOfStock   Kind = "out_of_stock"
	KindUpdateFailed Kind = "update_failed"
)

var messages = map[Kind]string{
	KindAddFailed:    "product addition failed",
	KindRemoveFailed: "product removal failed",
	KindOutOfStock:   "requested quantity out of stock",
	KindUpdateFailed: "quantity change failed",
}

// Message returns the user-facing text for k.
func (k Kind) Message() string { return messages[k] }

// Notification is a transient user-visible message, toast style.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ProductID int       `json:"productId"`
	At        time.Time `json:"at"`
}

func newNotification(kind Kind, productID int, at time.Time) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   kind.Message(),
		ProductID: productID,
		At:        at,
	}
}

// Notifier is fire-and-forget; implementations must not block the caller for long.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notification) {
	if l.Log == nil {
		return
	}
	l.Log.Warn(n.Message,
		zap.String("notification_id", n.ID),
		zap.String("kind", string(n.Kind)),
		zap.Int("product_id", n.ProductID),
	)
}

// Recorder keeps the most recent notifications, newest last.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, n)
	if over := len(r.items) - r.limit; over > 0 {
		r.items = append(r.items[:0], r.items[over:]...)
	}
}

func (r *Recorder) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}
