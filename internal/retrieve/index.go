package retrieve

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/model"
)

// DefaultTopK is how many documents a lookup returns
const DefaultTopK = 3

const maxSnippetRunes = 400

// Document is one entry of the local knowledge base
type Document struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title,omitempty"`
	Source string `yaml:"source,omitempty"`
	Text   string `yaml:"text"`
	Tier   string `yaml:"tier,omitempty"`
}

type documentFile struct {
	Documents []Document `yaml:"documents"`
}

// Index is an in-memory TF-IDF index with cosine ranking
type Index struct {
	docs         []Document
	vectors      []map[string]float64
	idf          map[string]float64
	topK         int
	minRelevance float64
}

// LoadIndex reads a YAML document file ("documents: [{id, title, source, text, tier}]")
func LoadIndex(path string, topK int, minRelevance float64) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var file documentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}

	for i, doc := range file.Documents {
		if strings.TrimSpace(doc.Text) == "" {
			return nil, fmt.Errorf("parse index %s: document %d has no text", path, i)
		}
	}

	return NewIndex(file.Documents, topK, minRelevance), nil
}

// NewIndex builds an index over docs. Documents without an id are numbered.
func NewIndex(docs []Document, topK int, minRelevance float64) *Index {
	if topK <= 0 {
		topK = DefaultTopK
	}

	idx := &Index{
		docs:         make([]Document, len(docs)),
		vectors:      make([]map[string]float64, len(docs)),
		idf:          make(map[string]float64),
		topK:         topK,
		minRelevance: minRelevance,
	}

	termCounts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("doc-%d", i+1)
		}
		idx.docs[i] = doc

		counts := termFrequencies(doc.Title + " " + doc.Text)
		termCounts[i] = counts
		for term := range counts {
			docFreq[term]++
		}
	}

	// smoothed idf: ln((1+N)/(1+df)) + 1
	n := float64(len(docs))
	for term, df := range docFreq {
		idx.idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	for i, counts := range termCounts {
		idx.vectors[i] = idx.weigh(counts)
	}
	return idx
}

// Name identifies the retriever
func (i *Index) Name() string { return string(model.OriginIndex) }

// Len returns the number of indexed documents
func (i *Index) Len() int { return len(i.docs) }

// Retrieve returns up to topK documents whose cosine similarity with the
// claim exceeds the minimum relevance, best first
func (i *Index) Retrieve(ctx context.Context, claim string) ([]model.EvidenceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := i.weigh(termFrequencies(claim))
	if len(query) == 0 {
		return nil, nil
	}

	type hit struct {
		doc   int
		score float64
	}
	var hits []hit
	for d, vec := range i.vectors {
		if score := cosine(query, vec); score > i.minRelevance {
			hits = append(hits, hit{doc: d, score: score})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })
	if len(hits) > i.topK {
		hits = hits[:i.topK]
	}

	items := make([]model.EvidenceItem, 0, len(hits))
	for _, h := range hits {
		doc := i.docs[h.doc]
		source := doc.Source
		if source == "" {
			source = "index:" + doc.ID
		}
		tier := model.TierUnknown
		if doc.Tier != "" {
			tier = ParseTier(doc.Tier)
		}
		items = append(items, model.EvidenceItem{
			Source:    source,
			Title:     doc.Title,
			Snippet:   snippet(doc.Text),
			Stance:    model.StanceNotEnoughInfo,
			Relevance: h.score,
			Origin:    model.OriginIndex,
			Authority: tier,
		})
	}
	return items, nil
}

// weigh turns raw term counts into an L2-normalized tf-idf vector over
// indexed terms only
func (i *Index) weigh(counts map[string]int) map[string]float64 {
	vec := make(map[string]float64, len(counts))
	var norm float64
	for term, c := range counts {
		idf, ok := i.idf[term]
		if !ok {
			continue
		}
		w := float64(c) * idf
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return map[string]float64{}
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}

func termFrequencies(text string) map[string]int {
	counts := make(map[string]int)
	for _, term := range extract.Terms(text) {
		counts[term]++
	}
	return counts
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= maxSnippetRunes {
		return text
	}
	return strings.TrimSpace(string(r[:maxSnippetRunes])) + "..."
}
