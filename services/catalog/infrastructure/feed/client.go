// Package feed fetches the upstream catalog feed and transforms its raw
// records into catalog products. The feed is a spreadsheet-backed endpoint:
// every field arrives as a string, including numbers, JSON-encoded maps and
// the boolean flag.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ghuser/atelier/pkg/logger"
	catalogdomain "github.com/ghuser/atelier/services/catalog/domain"
	"github.com/ghuser/atelier/services/catalog/domain/models"
)

// The feed marks non-values with sentinel strings rather than leaving
// cells empty.
const (
	flagTrue     = "TRUE"
	noCollection = "FALSE"

	// headerRowName is the spreadsheet header row, which the feed returns
	// as a regular record and must be filtered out.
	headerRowName = "Название"
)

// rawProduct is one feed record. Every field is a string.
type rawProduct struct {
	Name       string `json:"name"`
	ImgLink    string `json:"imgLink"`
	Price      string `json:"price"`
	Sizes      string `json:"sizes"`
	Type       string `json:"type"`
	NewItem    string `json:"newItem"`
	Collection string `json:"collection"`
	BackImages string `json:"backImages"`
}

type feedResponse struct {
	Data []rawProduct `json:"data"`
}

// Client fetches and decodes the catalog feed.
type Client struct {
	http *http.Client
	url  string
	log  logger.Logger
}

// NewClient returns a feed client for the given endpoint.
func NewClient(httpClient *http.Client, url string, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, url: url, log: log}
}

// Fetch downloads the feed and returns the transformed product list in feed
// order. Network and envelope failures are surfaced as ErrFeedUnavailable /
// ErrMalformedFeed; malformed sub-fields inside a record degrade to safe
// defaults instead of failing the whole catalog.
func (c *Client) Fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", catalogdomain.ErrFeedUnavailable, resp.StatusCode)
	}

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrMalformedFeed, err)
	}

	products := make([]models.Product, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if raw.Name == headerRowName || raw.Name == "" {
			continue
		}
		products = append(products, c.transform(ctx, raw))
	}
	return products, nil
}

// transform converts one raw record into a Product. Price parse failure
// yields 0; sizes and back-images degrade to empty values per field.
func (c *Client) transform(ctx context.Context, raw rawProduct) models.Product {
	price, err := strconv.ParseInt(strings.TrimSpace(raw.Price), 10, 64)
	if err != nil || price < 0 {
		if c.log != nil {
			c.log.WarnContext(ctx, "feed: unparseable price, defaulting to 0",
				"product", raw.Name, "price", raw.Price)
		}
		price = 0
	}

	collection := raw.Collection
	if collection == noCollection {
		collection = ""
	}

	return models.Product{
		ID:               SlugID(raw.Name),
		Name:             raw.Name,
		Description:      fmt.Sprintf("Beautiful %s from our collection", raw.Type),
		ImageURL:         raw.ImgLink,
		AdditionalImages: c.parseImages(ctx, raw),
		Price:            price,
		Category:         raw.Type,
		Collection:       collection,
		IsNew:            raw.NewItem == flagTrue,
		SizeStock:        c.parseSizes(ctx, raw),
	}
}

// parseSizes decodes the JSON-object sizes cell into a stock map.
// Any failure degrades to an empty map (not size-tracked).
func (c *Client) parseSizes(ctx context.Context, raw rawProduct) map[string]int {
	s := strings.TrimSpace(raw.Sizes)
	if s == "" {
		return map[string]int{}
	}
	var sizes map[string]int
	if err := json.Unmarshal([]byte(s), &sizes); err != nil {
		if c.log != nil {
			c.log.WarnContext(ctx, "feed: unparseable sizes, degrading to untracked",
				"product", raw.Name, "error", err)
		}
		return map[string]int{}
	}
	for label, n := range sizes {
		if n < 0 {
			sizes[label] = 0
		}
	}
	return sizes
}

// parseImages decodes the JSON-array back-images cell.
// Any failure degrades to an empty list.
func (c *Client) parseImages(ctx context.Context, raw rawProduct) []string {
	s := strings.TrimSpace(raw.BackImages)
	if s == "" {
		return nil
	}
	var images []string
	if err := json.Unmarshal([]byte(s), &images); err != nil {
		if c.log != nil {
			c.log.WarnContext(ctx, "feed: unparseable back images, degrading to none",
				"product", raw.Name, "error", err)
		}
		return nil
	}
	return images
}

// SlugID derives the stable product identifier from the feed name, matching
// the storefront's convention: lowercase, whitespace runs collapsed to "-",
// prefixed with "product-".
func SlugID(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return "product-" + slug
}
