// internal/workers/search/search-jobs/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type QueryResult struct {
	Jobs      []map[string]interface{}
	TotalHits int64
	Took      int64
}

func Execute(ctx context.Context, esClient *elasticsearch.Client, jq JobQuery) (*QueryResult, error) {
	req, err := BuildQuery(esClient, jq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	jobs := make([]map[string]interface{}, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		jobs = append(jobs, hit.Source)
	}

	return &QueryResult{
		Jobs:      jobs,
		TotalHits: r.Hits.Total.Value,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
