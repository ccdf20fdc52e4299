package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
nodes:
  - name: EP_1
    children:
      - name: LV_1
      - name: HV_1
  - name: EP_2
    children:
      - name: LV_2
      - name: HV_2
connections:
  - from: EP_1
    to: EP_2
  - from: LV_1
    to: HV_1
    conditional: true
  - from: EP_1
    to: HV_2
    shallow: true
`

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "EP_1", doc.Nodes[0].Name)
	require.Len(t, doc.Nodes[0].Children, 2)
	require.Len(t, doc.Connections, 3)
	assert.True(t, doc.Connections[1].Conditional)
	assert.True(t, doc.Connections[2].Shallow)
}

func TestLoadDocument_BadYAML(t *testing.T) {
	_, err := LoadDocument(strings.NewReader("nodes: [unclosed"))
	assert.Error(t, err)
}

func TestDocumentBuild(t *testing.T) {
	doc, err := LoadDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	g, ids, err := doc.Build()
	require.NoError(t, err)

	assert.Equal(t, 6, g.NodeCount())
	assert.Equal(t, 7, g.EdgeCount()) // 4 composition + 3 connection

	parent, ok := g.Parent(ids["LV_1"])
	require.True(t, ok)
	assert.Equal(t, ids["EP_1"], parent)

	conns := g.ConnectionEdges(ids["EP_1"])
	require.Len(t, conns, 2)
	assert.False(t, conns[0].Shallow)
	assert.True(t, conns[1].Shallow)
}

func TestDocumentBuild_DuplicateName(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{{Name: "A"}, {Name: "A"}},
	}
	_, _, err := doc.Build()
	assert.ErrorIs(t, err, ErrDuplicateNode)
}

func TestDocumentBuild_UnknownConnectionEndpoint(t *testing.T) {
	doc := &Document{
		Nodes:       []NodeSpec{{Name: "A"}},
		Connections: []ConnectionSpec{{From: "A", To: "missing"}},
	}
	_, _, err := doc.Build()
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestDocumentRoundTripFile(t *testing.T) {
	doc, err := LoadDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	dir := t.TempDir()

	for _, name := range []string{"graph.yaml", "graph.yaml.snappy"} {
		path := filepath.Join(dir, name)
		require.NoError(t, doc.WriteFile(path))

		loaded, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, doc, loaded, name)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
