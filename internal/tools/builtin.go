package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// queryArgs is the shared argument shape for the search tools.
type queryArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// sqlArgs is the argument shape for smartSql.
type sqlArgs struct {
	Question string `json:"question"`
}

// querySchema is the JSON schema shared by the search tools.
func querySchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": description,
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Maximum number of results to return",
			},
		},
		"required": []any{"query"},
	}
}

// NewBuiltinRegistry returns a registry with the congress-data tools wired
// to the given data API.
func NewBuiltinRegistry(api *DataAPI) *Registry {
	r := NewRegistry()

	r.MustRegister(&Definition{
		Name:        "searchBills",
		Description: "Search federal bills and resolutions by topic, sponsor, or bill number.",
		InputSchema: querySchema("Search terms, e.g. a topic, sponsor name, or bill number"),
		Execute:     searchExecutor(api, "/v1/bills/search"),
	})

	r.MustRegister(&Definition{
		Name:        "searchMembers",
		Description: "Search members of Congress by name, state, or chamber.",
		InputSchema: querySchema("Member name, state, or chamber to search for"),
		Execute:     searchExecutor(api, "/v1/members/search"),
	})

	r.MustRegister(&Definition{
		Name:        "searchNews",
		Description: "Search recent news coverage of legislation and members of Congress.",
		InputSchema: querySchema("News search terms"),
		Execute:     searchExecutor(api, "/v1/news/search"),
	})

	r.MustRegister(&Definition{
		Name:        "smartSql",
		Description: "Answer a structured question over the legislative database, returning rows for display.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question to answer from the database, in plain language",
				},
			},
			"required": []any{"question"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			var a sqlArgs
			if err := json.Unmarshal(args, &a); err != nil {
				return nil, fmt.Errorf("invalid smartSql args: %w", err)
			}
			if a.Question == "" {
				return nil, fmt.Errorf("question is required")
			}
			return api.post(ctx, "/v1/sql", a)
		},
	})

	return r
}

// searchExecutor builds the executor for one GET search endpoint.
func searchExecutor(api *DataAPI, path string) ExecutorFunc {
	return func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var a queryArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("invalid search args: %w", err)
		}
		if a.Query == "" {
			return nil, fmt.Errorf("query is required")
		}

		q := url.Values{}
		q.Set("q", a.Query)
		if a.Limit > 0 {
			q.Set("limit", fmt.Sprintf("%d", a.Limit))
		}
		return api.get(ctx, path, q)
	}
}
