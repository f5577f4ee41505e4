// api/audit/repository.go
package audit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"gorm.io/gorm"
)

type Repository interface {
	Append(ctx context.Context, record AuditRecord) error
	Query(ctx context.Context, q Query) ([]AuditRecord, int64, error)
}

// GormRepository keeps the audit trail in the relational store.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Append(ctx context.Context, record AuditRecord) error {
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *GormRepository) Query(ctx context.Context, q Query) ([]AuditRecord, int64, error) {
	tx := r.db.WithContext(ctx).Model(&AuditRecord{})
	if q.EntityName != "" {
		tx = tx.Where("entity_name = ?", q.EntityName)
	}
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.UserID != "" {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.Module != "" {
		tx = tx.Where("module = ?", q.Module)
	}
	if q.DateFrom != nil {
		tx = tx.Where("created_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		tx = tx.Where("created_at <= ?", *q.DateTo)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []AuditRecord
	err := tx.Order("created_at DESC").
		Offset(q.Page.Offset()).
		Limit(q.Page.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ElasticsearchRepository indexes the audit trail for search.
type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

func (r *ElasticsearchRepository) Append(ctx context.Context, record AuditRecord) error {
	data, err := sonic.ConfigStd.Marshal(record)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: record.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source AuditRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (r *ElasticsearchRepository) Query(ctx context.Context, q Query) ([]AuditRecord, int64, error) {
	body, err := sonic.ConfigStd.Marshal(buildSearch(q))
	if err != nil {
		return nil, 0, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(bytes.NewReader(body)),
		r.esClient.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("error searching documents: %s", res.String())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}
	var parsed searchResponse
	if err := sonic.ConfigStd.Unmarshal(raw, &parsed); err != nil {
		return nil, 0, err
	}

	records := make([]AuditRecord, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		records = append(records, hit.Source)
	}
	return records, parsed.Hits.Total.Value, nil
}

func buildSearch(q Query) map[string]interface{} {
	filters := []interface{}{}
	term := func(field, value string) {
		if value != "" {
			filters = append(filters, map[string]interface{}{
				"term": map[string]interface{}{field: value},
			})
		}
	}
	term("entity_name", q.EntityName)
	term("action", string(q.Action))
	term("user_id", q.UserID)
	term("module", q.Module)

	if q.DateFrom != nil || q.DateTo != nil {
		rng := map[string]interface{}{}
		if q.DateFrom != nil {
			rng["gte"] = q.DateFrom.Format(time.RFC3339)
		}
		if q.DateTo != nil {
			rng["lte"] = q.DateTo.Format(time.RFC3339)
		}
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"created_at": rng},
		})
	}

	return map[string]interface{}{
		"from": q.Page.Offset(),
		"size": q.Page.Limit,
		"sort": []interface{}{
			map[string]interface{}{"created_at": map[string]interface{}{"order": "desc"}},
		},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
	}
}
