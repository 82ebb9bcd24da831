// internal/workers/search/search-jobs/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// JobQuery describes one search against the job posting index.
type JobQuery struct {
	Index      string
	QueryType  string
	Keywords   string
	RegionCode string
	VisaType   string
	Industry   string
	JobID      string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters.
func BuildQuery(esClient *elasticsearch.Client, jq JobQuery) (*esapi.SearchRequest, error) {
	if jq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch jq.QueryType {
	case "job_search":
		queryBody = buildJobSearchQuery(jq)
	case "similar_jobs":
		queryBody = buildSimilarJobsQuery(jq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, jq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{jq.Index},
		Body:  strings.NewReader(string(body)),
		From:  &jq.Pagination.From,
		Size:  &jq.Pagination.Size,
	}

	return &req, nil
}

// buildJobSearchQuery builds the marketplace job listing query dynamically.
func buildJobSearchQuery(jq JobQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{
		// closed postings never appear in listings
		map[string]interface{}{
			"term": map[string]interface{}{"status": "open"},
		},
	}

	if jq.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  jq.Keywords,
				"fields": []string{"title^3", "description^2", "company_name"},
				"type":   "best_fields",
			},
		})
	}

	if jq.RegionCode != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"region_code": jq.RegionCode},
		})
	}

	// visa_types is the posting's accepted-visa keyword array
	if jq.VisaType != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"visa_types": jq.VisaType},
		})
	}

	if jq.Industry != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"industry": jq.Industry},
		})
	}

	boolQuery := map[string]interface{}{
		"filter": filterClauses,
	}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	// without keywords relevance scoring is meaningless, list newest first
	if jq.Keywords == "" {
		query["sort"] = []map[string]interface{}{{"posted_at": "desc"}}
	}

	return query
}

// buildSimilarJobsQuery builds the "similar postings" query.
func buildSimilarJobsQuery(jq JobQuery) map[string]interface{} {
	if jq.JobID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"title", "description", "industry"},
				"like": []map[string]interface{}{
					{"_index": jq.Index, "_id": jq.JobID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}
