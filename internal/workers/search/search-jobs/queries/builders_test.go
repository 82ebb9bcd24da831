// internal/workers/search/search-jobs/queries/builders_test.go
package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&decoded))
	return decoded
}

func TestBuildQueryMissingIndex(t *testing.T) {
	_, err := BuildQuery(nil, JobQuery{QueryType: "job_search"})
	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestBuildQueryUnknownType(t *testing.T) {
	_, err := BuildQuery(nil, JobQuery{Index: "jobs", QueryType: "trending"})
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}

func TestBuildJobSearchQueryFilters(t *testing.T) {
	jq := JobQuery{
		Index:      "jobs",
		QueryType:  "job_search",
		Keywords:   "주방 보조",
		RegionCode: "11",
		VisaType:   "E-9",
		Industry:   "food_service",
	}
	jq.Pagination.From = 20
	jq.Pagination.Size = 20

	req, err := BuildQuery(nil, jq)
	require.NoError(t, err)
	assert.Equal(t, []string{"jobs"}, req.Index)
	assert.Equal(t, 20, *req.From)
	assert.Equal(t, 20, *req.Size)

	body := decodeBody(t, req.Body)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})

	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "주방 보조", multiMatch["query"])

	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 4)
	terms := map[string]interface{}{}
	for _, f := range filters {
		for field, value := range f.(map[string]interface{})["term"].(map[string]interface{}) {
			terms[field] = value
		}
	}
	assert.Equal(t, "open", terms["status"])
	assert.Equal(t, "11", terms["region_code"])
	assert.Equal(t, "E-9", terms["visa_types"])
	assert.Equal(t, "food_service", terms["industry"])

	// keyword searches sort by relevance, not recency
	_, sorted := body["sort"]
	assert.False(t, sorted)
}

func TestBuildJobSearchQueryWithoutKeywordsSortsByRecency(t *testing.T) {
	req, err := BuildQuery(nil, JobQuery{Index: "jobs", QueryType: "job_search"})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	_, hasMust := boolQuery["must"]
	assert.False(t, hasMust)

	sortClauses := body["sort"].([]interface{})
	require.Len(t, sortClauses, 1)
	assert.Contains(t, sortClauses[0].(map[string]interface{}), "posted_at")
}

func TestBuildSimilarJobsQuery(t *testing.T) {
	req, err := BuildQuery(nil, JobQuery{Index: "jobs", QueryType: "similar_jobs", JobID: "job-42"})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	mlt := body["query"].(map[string]interface{})["more_like_this"].(map[string]interface{})
	like := mlt["like"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "job-42", like["_id"])
	assert.Equal(t, "jobs", like["_index"])
}

func TestBuildSimilarJobsQueryWithoutIDMatchesNothing(t *testing.T) {
	req, err := BuildQuery(nil, JobQuery{Index: "jobs", QueryType: "similar_jobs"})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	assert.Contains(t, body["query"].(map[string]interface{}), "match_none")
}
