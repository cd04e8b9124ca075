package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrLookupNotFound    = errors.New("lookup: not found")
	ErrLookupBadStatus   = errors.New("lookup: bad status")
	ErrLookupUnavailable = errors.New("lookup: unavailable")
)

const lookupTimeout = 3 * time.Second

type lookupClient struct {
	BaseURL string
	Client  *http.Client
}

func newLookupClient(baseURL string) lookupClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return lookupClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: lookupTimeout},
	}
}

// getJSON makes exactly one attempt; callers decide what a failure means.
func (c lookupClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrLookupNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrLookupBadStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrLookupBadStatus, err)
	}
	return nil
}

// CatalogClient resolves products over GET /products/{id}.
type CatalogClient struct {
	lookupClient
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{newLookupClient(baseURL)}
}

func (c *CatalogClient) GetProduct(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, "/products/"+strconv.Itoa(id), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// StockClient resolves stock over GET /stock/{id}.
type StockClient struct {
	lookupClient
}

func NewStockClient(baseURL string) *StockClient {
	return &StockClient{newLookupClient(baseURL)}
}

func (c *StockClient) GetStock(ctx context.Context, id int) (Stock, error) {
	var st Stock
	if err := c.getJSON(ctx, "/stock/"+strconv.Itoa(id), &st); err != nil {
		return Stock{}, err
	}
	return st, nil
}
