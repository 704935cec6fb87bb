package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/veritas/internal/model"
)

type stubRetriever struct {
	name  string
	items []model.EvidenceItem
	err   error
}

func (s stubRetriever) Name() string { return s.name }

func (s stubRetriever) Retrieve(context.Context, string) ([]model.EvidenceItem, error) {
	return s.items, s.err
}

func TestMulti_MergesInOrderAndDedupes(t *testing.T) {
	m := NewMulti(nil,
		stubRetriever{name: "index", items: []model.EvidenceItem{
			{Source: "index:a"},
			{Source: "https://Example.com/x"},
		}},
		nil,
		stubRetriever{name: "web", items: []model.EvidenceItem{
			{Source: "https://example.com/x"},
			{Source: "https://other.example/y"},
		}},
	)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "multi(index,web)", m.Name())

	items, err := m.Retrieve(context.Background(), "claim")
	require.NoError(t, err)

	sources := make([]string, len(items))
	for i, it := range items {
		sources[i] = it.Source
	}
	assert.Equal(t, []string{"index:a", "https://Example.com/x", "https://other.example/y"}, sources)
}

func TestMulti_PartialFailure(t *testing.T) {
	m := NewMulti(nil,
		stubRetriever{name: "index", items: []model.EvidenceItem{{Source: "index:a"}}},
		stubRetriever{name: "web", err: errors.New("search blocked")},
	)

	items, err := m.Retrieve(context.Background(), "claim")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

type panickingRetriever struct{}

func (panickingRetriever) Name() string { return "broken" }

func (panickingRetriever) Retrieve(context.Context, string) ([]model.EvidenceItem, error) {
	panic("index corrupted")
}

func TestMulti_PanicIsRetrieverError(t *testing.T) {
	m := NewMulti(nil,
		stubRetriever{name: "index", items: []model.EvidenceItem{{Source: "index:a"}}},
		panickingRetriever{},
	)

	var items []model.EvidenceItem
	var err error
	require.NotPanics(t, func() {
		items, err = m.Retrieve(context.Background(), "claim")
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "index:a", items[0].Source)

	_, err = NewMulti(nil, panickingRetriever{}).Retrieve(context.Background(), "claim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index corrupted")
}

func TestMulti_AllFail(t *testing.T) {
	m := NewMulti(nil,
		stubRetriever{name: "index", err: errors.New("corrupt")},
		stubRetriever{name: "web", err: errors.New("offline")},
	)

	_, err := m.Retrieve(context.Background(), "claim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index: corrupt")
	assert.Contains(t, err.Error(), "web: offline")
}

func TestMulti_Empty(t *testing.T) {
	items, err := NewMulti(nil).Retrieve(context.Background(), "claim")
	assert.NoError(t, err)
	assert.Empty(t, items)
}
