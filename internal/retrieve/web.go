package retrieve

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/model"
)

// WebRetriever scrapes a search results page for evidence links
type WebRetriever struct {
	fetcher         *Fetcher
	authority       *AuthorityClassifier
	searchURL       string
	resultSelector  string
	linkSelector    string
	snippetSelector string
	topK            int
	exclude         []string
}

// NewWebRetriever creates a web retriever from retrieval settings
func NewWebRetriever(cfg model.RetrievalConfig, fetcher *Fetcher, authority *AuthorityClassifier) *WebRetriever {
	if authority == nil {
		authority = NewAuthorityClassifier(nil)
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &WebRetriever{
		fetcher:         fetcher,
		authority:       authority,
		searchURL:       cfg.SearchURL,
		resultSelector:  cfg.ResultSelector,
		linkSelector:    cfg.LinkSelector,
		snippetSelector: cfg.SnippetSelector,
		topK:            topK,
		exclude:         cfg.ExcludeDomains,
	}
}

// Name identifies the retriever
func (w *WebRetriever) Name() string { return string(model.OriginWeb) }

// SearchURL returns the results page address for a claim
func (w *WebRetriever) SearchURL(claim string) string {
	escaped := url.QueryEscape(claim)
	if strings.Contains(w.searchURL, "%s") {
		return strings.Replace(w.searchURL, "%s", escaped, 1)
	}
	return w.searchURL + escaped
}

// Retrieve fetches the results page for claim and returns the first topK
// distinct result links
func (w *WebRetriever) Retrieve(ctx context.Context, claim string) ([]model.EvidenceItem, error) {
	if strings.TrimSpace(w.searchURL) == "" {
		return nil, fmt.Errorf("web retrieval: no search url configured")
	}

	page, err := w.fetcher.FetchWithRetry(ctx, w.SearchURL(claim))
	if err != nil {
		return nil, fmt.Errorf("web retrieval: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	base, _ := url.Parse(page.FinalURL)
	searchHost := extract.Host(page.FinalURL)

	var items []model.EvidenceItem
	seen := make(map[string]bool)

	doc.Find(w.resultSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find(w.linkSelector).First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		target := extract.UnwrapRedirect(extract.ResolveURL(base, href))
		host := extract.Host(target)
		if target == "" || host == "" || host == searchHost || seen[target] || w.excluded(host) {
			return true
		}
		seen[target] = true

		tier := w.authority.Classify(target)
		items = append(items, model.EvidenceItem{
			Source:    target,
			Title:     strings.TrimSpace(link.Text()),
			Snippet:   snippet(s.Find(w.snippetSelector).Text()),
			Stance:    model.StanceNotEnoughInfo,
			Relevance: 1 / float64(len(items)+1),
			Origin:    model.OriginWeb,
			Authority: tier,
		})
		return len(items) < w.topK
	})

	return items, nil
}

func (w *WebRetriever) excluded(host string) bool {
	for _, domain := range w.exclude {
		if extract.MatchesDomain(host, domain) {
			return true
		}
	}
	return false
}
