package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// googleCSEMaxResults is Google's documented per-call ceiling.
const googleCSEMaxResults = 10

// googleCSE queries the Google Custom Search JSON API.
type googleCSE struct {
	apiKey  string
	cseID   string
	baseURL string
	client  *http.Client
}

func newGoogleCSE(apiKey, cseID string) *googleCSE {
	return &googleCSE{
		apiKey:  apiKey,
		cseID:   cseID,
		baseURL: "https://www.googleapis.com/customsearch/v1",
		client:  newHTTPClient(),
	}
}

type googleCSEResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

func (p *googleCSE) Search(ctx context.Context, query string, n int) ([]Result, error) {
	capped := n
	if capped > googleCSEMaxResults {
		capped = googleCSEMaxResults
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(capped))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build google cse request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google cse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google cse returned %d", resp.StatusCode)
	}

	var data googleCSEResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode google cse response: %w", err)
	}

	var results []Result
	for _, item := range data.Items {
		if len(results) == n {
			break
		}
		results = append(results, Result{Title: item.Title, Snippet: item.Snippet, URL: item.Link})
	}
	return results, nil
}
