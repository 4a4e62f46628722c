package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	catalogEntity "mixtape.GO/model/entity/catalog"
)

// Searcher is a full-text index over product titles.
type Searcher interface {
	Search(ctx context.Context, q string) ([]uint, error)
	Index(ctx context.Context, p *catalogEntity.Product) error
	Remove(ctx context.Context, id uint) error
}

type ElasticSearcher struct {
	client *elasticsearch.Client
	index  string
	size   int
}

// NewElasticSearcher returns nil when host is empty.
func NewElasticSearcher(host, index string) (*ElasticSearcher, error) {
	if host == "" {
		return nil, nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return &ElasticSearcher{client: client, index: index, size: 100}, nil
}

type searchDoc struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Variants    []string `json:"variants"`
}

func (s *ElasticSearcher) Search(ctx context.Context, q string) ([]uint, error) {
	body := map[string]interface{}{
		"size": s.size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     q,
				"fields":    []string{"title^3", "variants", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

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
				Source searchDoc `json:"_source"`
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

func (s *ElasticSearcher) Index(ctx context.Context, p *catalogEntity.Product) error {
	doc := searchDoc{ID: p.ID, Title: p.Title, Description: p.Description}
	for _, v := range p.Variants {
		doc.Variants = append(doc.Variants, v.Name)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(b),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}

func (s *ElasticSearcher) Remove(ctx context.Context, id uint) error {
	res, err := s.client.Delete(
		s.index,
		strconv.FormatUint(uint64(id), 10),
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete error: %s", res.String())
	}
	return nil
}
