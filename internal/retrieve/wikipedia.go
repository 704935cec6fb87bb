package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/model"
)

// WikipediaRetriever searches Wikipedia through the MediaWiki API and
// returns the matching articles' search snippets as evidence
type WikipediaRetriever struct {
	fetcher   *Fetcher
	authority *AuthorityClassifier
	apiURL    string
	lang      string
	topK      int
}

// searchResponse is the subset of the MediaWiki list=search response we read
type searchResponse struct {
	Query struct {
		Search []struct {
			Title     string `json:"title"`
			PageID    int    `json:"pageid"`
			Snippet   string `json:"snippet"`
			Timestamp string `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// NewWikipediaRetriever creates a retriever for the configured language
// edition. cfg.WikiAPI overrides the endpoint.
func NewWikipediaRetriever(cfg model.RetrievalConfig, fetcher *Fetcher, authority *AuthorityClassifier) *WikipediaRetriever {
	if authority == nil {
		authority = NewAuthorityClassifier(nil)
	}
	lang := strings.TrimSpace(cfg.WikiLang)
	if lang == "" {
		lang = "en"
	}
	apiURL := cfg.WikiAPI
	if apiURL == "" {
		apiURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &WikipediaRetriever{
		fetcher:   fetcher,
		authority: authority,
		apiURL:    apiURL,
		lang:      lang,
		topK:      topK,
	}
}

// Name identifies the retriever
func (w *WikipediaRetriever) Name() string { return "wikipedia" }

// SearchURL returns the API request for a claim
func (w *WikipediaRetriever) SearchURL(claim string) string {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("format", "json")
	params.Set("utf8", "1")
	params.Set("srprop", "snippet|timestamp")
	params.Set("srlimit", strconv.Itoa(w.topK))
	params.Set("srsearch", claim)
	return w.apiURL + "?" + params.Encode()
}

// PageURL is the article address for a title
func (w *WikipediaRetriever) PageURL(title string) string {
	path := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", w.lang, path)
}

// Retrieve runs one search and converts hits to evidence in rank order
func (w *WikipediaRetriever) Retrieve(ctx context.Context, claim string) ([]model.EvidenceItem, error) {
	page, err := w.fetcher.FetchWithRetry(ctx, w.SearchURL(claim))
	if err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal([]byte(page.HTML), &resp); err != nil {
		return nil, fmt.Errorf("decode wikipedia response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("wikipedia api: %s: %s", resp.Error.Code, resp.Error.Info)
	}

	items := make([]model.EvidenceItem, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		text := extract.Preprocess(hit.Snippet)
		if strings.TrimSpace(hit.Title) == "" || text == "" {
			continue
		}
		source := w.PageURL(hit.Title)
		items = append(items, model.EvidenceItem{
			Source:    source,
			Title:     hit.Title,
			Snippet:   snippet(hit.Title + ": " + text),
			Stance:    model.StanceNotEnoughInfo,
			Relevance: 1 / float64(len(items)+1),
			Origin:    model.OriginWeb,
			Authority: w.authority.Classify(source),
		})
		if len(items) == w.topK {
			break
		}
	}
	return items, nil
}
