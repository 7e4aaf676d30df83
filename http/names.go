package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultNamesURL is the data.gov.il datastore query for the given names
// dataset.
const DefaultNamesURL = "https://data.gov.il/api/3/action/datastore_search?resource_id=8fbc7cc8-9426-4a39-b996-6b8d75ee4fc3&limit=5000"

// Column spellings seen across dataset revisions, in preference order.
var (
	hebrewNameKeys = []string{"שם פרטי", "שם", "name_he", "heb"}
	latinNameKeys  = []string{"שם_לועזי", "שם באנגלית", "name_en", "eng"}
)

// NamesClient downloads the government given names dataset.
type NamesClient struct {
	client *http.Client
	URL    string
}

// NewNamesClient creates a NamesClient for DefaultNamesURL. If client is
// nil, http.DefaultClient is used.
func NewNamesClient(client *http.Client) *NamesClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &NamesClient{client: client, URL: DefaultNamesURL}
}

// Download returns the dataset as a map from lower-cased Latin spelling to
// Hebrew spelling. Records missing either spelling are skipped.
func (c *NamesClient) Download(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.URL)
	}

	var payload struct {
		Result struct {
			Records []map[string]any `json:"records"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding names dataset: %w", err)
	}

	names := make(map[string]string, len(payload.Result.Records))
	for _, rec := range payload.Result.Records {
		heb := firstString(rec, hebrewNameKeys)
		latin := firstString(rec, latinNameKeys)
		if heb == "" || latin == "" {
			continue
		}
		names[strings.ToLower(latin)] = heb
	}
	return names, nil
}

// firstString returns the first non-blank string value under keys.
func firstString(rec map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
