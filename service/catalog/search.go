package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	"shopzone.GO/config"
	"shopzone.GO/model/entity"
)

// Searcher returns the ids of products matching a free-text query.
type Searcher interface {
	SearchProductIDs(ctx context.Context, query string) ([]uint, error)
}

// SearchService queries and feeds the Elasticsearch product index.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

// NewSearchServiceFromEnv returns nil when ELASTICSEARCH_HOST is unset.
func NewSearchServiceFromEnv() (*SearchService, error) {
	host := config.GetEnv("ELASTICSEARCH_HOST", "")
	if host == "" {
		return nil, nil
	}
	prefix := config.GetEnv("ELASTICSEARCH_INDEX_PREFIX", "shopzone")
	return NewSearchService(host, prefix+"_products")
}

func NewSearchService(host, index string) (*SearchService, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return &SearchService{client: client, index: index}, nil
}

const searchSize = 200

// SearchProductIDs runs a fuzzy match on the product name.
func (s *SearchService) SearchProductIDs(ctx context.Context, query string) ([]uint, error) {
	body := map[string]interface{}{
		"size":    searchSize,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "category"},
				"fuzziness": "AUTO",
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}

type indexDoc struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Featured bool    `json:"featured"`
}

// IndexProducts writes products to the index with one bulk request.
func (s *SearchService) IndexProducts(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range products {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": strconv.FormatUint(uint64(p.ID), 10)},
		}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		doc := indexDoc{ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price, Rating: p.Rating, Featured: p.Featured}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	res, err := s.client.Bulk(bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk error: %s", res.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return err
	}
	if bulkResp.Errors {
		return fmt.Errorf("elasticsearch bulk: some documents failed")
	}
	return nil
}
