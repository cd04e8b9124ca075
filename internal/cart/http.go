package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

type Server struct {
	Store    *Store
	Recorder *Recorder
	Log      *zap.Logger
}

type amountReq struct {
	Amount *int `json:"amount"`
}

const maxAmountBody = 1 << 10

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.Cart())
}

func (s *Server) notifications(w http.ResponseWriter, _ *http.Request) {
	if s.Recorder == nil {
		kit.WriteJSON(w, http.StatusOK, []Notification{})
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Recorder.Recent())
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	res, err := s.Store.AddProduct(r.Context(), id)
	s.writeResult(w, r, res, err)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	res, err := s.Store.RemoveProduct(r.Context(), id)
	s.writeResult(w, r, res, err)
}

func (s *Server) updateAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	req, err := decodeAmountRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	res, err := s.Store.UpdateProductAmount(r.Context(), UpdateProductAmount{
		ProductID: id,
		Amount:    *req.Amount,
	})
	s.writeResult(w, r, res, err)
}

func decodeAmountRequest(w http.ResponseWriter, r *http.Request) (amountReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAmountBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req amountReq
	if err := dec.Decode(&req); err != nil {
		return amountReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return amountReq{}, errors.New("extra data after json object")
	}
	if req.Amount == nil {
		return amountReq{}, errors.New("amount required")
	}
	return req, nil
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res Result, err error) {
	status := http.StatusOK

	switch res.Outcome {
	case Added, Updated, Unmatched, Removed:
	case NotFound:
		status = http.StatusNotFound
	case OutOfStock:
		status = http.StatusConflict
	default:
		switch {
		case errors.Is(err, ErrProductLookup), errors.Is(err, ErrStockLookup):
			status = http.StatusBadGateway
		default:
			status = http.StatusInternalServerError
		}
		s.logger().Warn("cart operation failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	kit.WriteJSON(w, status, res)
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
