package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
)

func newNetwork(t *testing.T, cfg Config) *Network {
	t.Helper()
	n, err := New(cfg)
	require.NoError(t, err)
	return n
}

func TestNewDefaults(t *testing.T) {
	n := newNetwork(t, Config{})
	cfg := n.Config()

	assert.Equal(t, "600px", cfg.Height)
	assert.Equal(t, "100%", cfg.Width)
	assert.Equal(t, "#ffffff", cfg.BGColor)
	assert.Equal(t, "#FF0000", cfg.NodeColor)
	assert.Equal(t, 40.0, cfg.NodeSize)
	assert.Equal(t, 10.0, cfg.FontSize)
	assert.Equal(t, 1.0, cfg.EdgeWidth)
	assert.Equal(t, 1.5, cfg.KeyWeight)
	assert.False(t, n.Directed())
	assert.Nil(t, n.Options().Layout)
}

func TestNewRejectsInvalidKeyword(t *testing.T) {
	_, err := New(Config{Keywords: []ID{1.5}})
	assert.True(t, terrors.Is(err, terrors.ErrCodeInvalidID))
}

func TestKeywordSetsAreIndependent(t *testing.T) {
	a := newNetwork(t, Config{Keywords: []ID{"x"}})
	b := newNetwork(t, Config{})
	assert.True(t, a.IsKeyword("x"))
	assert.False(t, b.IsKeyword("x"))
}

func TestAddNodeStyling(t *testing.T) {
	n := newNetwork(t, Config{
		Keywords:     []ID{"key"},
		KeywordColor: "#00FF00",
		FontColor:    "#222222",
	})
	require.NoError(t, n.AddNode("key", "", "", nil))
	require.NoError(t, n.AddNode("plain", "", "", nil))

	key, ok := n.Node("key")
	require.True(t, ok)
	assert.Equal(t, "#00FF00", key["color"])
	assert.InDelta(t, 48.0, key["size"], 1e-9)
	assert.InDelta(t, 15.0, key["font"].(map[string]any)["size"], 1e-9)
	assert.Equal(t, "#222222", key["font"].(map[string]any)["color"])

	plain, _ := n.Node("plain")
	assert.Equal(t, "#FF0000", plain["color"])
	assert.InDelta(t, 36.0, plain["size"], 1e-9)
	assert.InDelta(t, 9.0, plain["font"].(map[string]any)["size"], 1e-9)
}

func TestAddNodeDefaults(t *testing.T) {
	n := newNetwork(t, Config{})
	require.NoError(t, n.AddNode(3, "", "", nil))

	node, _ := n.Node(3)
	assert.Equal(t, 3, node["id"])
	assert.Equal(t, 3, node["label"])
	assert.Equal(t, "dot", node["shape"])
	assert.Equal(t, false, node["font"].(map[string]any)["color"])

	require.NoError(t, n.AddNode("b", "Bee", "box", nil))
	node, _ = n.Node("b")
	assert.Equal(t, "Bee", node["label"])
	assert.Equal(t, "box", node["shape"])
}

func TestAddNodeOverridesWin(t *testing.T) {
	n := newNetwork(t, Config{})
	overrides := Attrs{"color": "#123456", "size": 7, "title": "hello", "id": "ignored"}
	require.NoError(t, n.AddNode("a", "", "", overrides))

	node, _ := n.Node("a")
	assert.Equal(t, "#123456", node["color"])
	assert.Equal(t, 7, node["size"])
	assert.Equal(t, "hello", node["title"])
	assert.Equal(t, "a", node["id"])

	overrides["title"] = "changed"
	node, _ = n.Node("a")
	assert.Equal(t, "hello", node["title"])
}

func TestAddNodeIdempotent(t *testing.T) {
	n := newNetwork(t, Config{})
	require.NoError(t, n.AddNode("a", "first", "", nil))
	require.NoError(t, n.AddNode("a", "second", "box", Attrs{"color": "blue"}))

	assert.Equal(t, 1, n.NodeCount())
	node, _ := n.Node("a")
	assert.Equal(t, "first", node["label"])
	assert.Equal(t, "dot", node["shape"])
}

func TestAddNodeInvalidID(t *testing.T) {
	n := newNetwork(t, Config{})
	for _, id := range []ID{nil, 1.5, []string{"a"}, struct{}{}} {
		err := n.AddNode(id, "", "", nil)
		assert.True(t, terrors.Is(err, terrors.ErrCodeInvalidID), "id %v", id)
	}
	assert.Equal(t, 0, n.NodeCount())
}

func TestIDTypesAreDistinct(t *testing.T) {
	n := newNetwork(t, Config{})
	require.NoError(t, n.AddNode("7", "", "", nil))
	require.NoError(t, n.AddNode(7, "", "", nil))
	assert.Equal(t, 2, n.NodeCount())
	assert.Equal(t, []ID{"7", 7}, n.NodeIDs())
}

func TestAddNodes(t *testing.T) {
	n := newNetwork(t, Config{})
	err := n.AddNodes([]ID{"1", 2, "c"}, map[string][]any{
		"title": {"one", "two", "three"},
		"x":     {0, 10, 20},
	})
	require.NoError(t, err)

	assert.Equal(t, []ID{"1", 2, "c"}, n.NodeIDs())
	node, ok := n.Node("1")
	require.True(t, ok, "numeric-looking string id keeps its type")
	assert.Equal(t, "one", node["title"])
	node, _ = n.Node(2)
	assert.Equal(t, 10, node["x"])
}

func TestAddNodesValidation(t *testing.T) {
	tests := []struct {
		name  string
		ids   []ID
		attrs map[string][]any
		code  terrors.Code
		msg   string
	}{
		{
			name:  "length mismatch",
			ids:   []ID{"a", "b"},
			attrs: map[string][]any{"size": {1}},
			code:  terrors.ErrCodeLengthMismatch,
			msg:   "keyword arg size [length 1] does not match [length 2] of nodes",
		},
		{
			name:  "unknown key",
			ids:   []ID{"a"},
			attrs: map[string][]any{"weight": {1}},
			code:  terrors.ErrCodeInvalidAttribute,
			msg:   `invalid arg "weight"`,
		},
		{
			name: "invalid id",
			ids:  []ID{"a", 2.5},
			code: terrors.ErrCodeInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNetwork(t, Config{})
			err := n.AddNodes(tt.ids, tt.attrs)
			require.Error(t, err)
			assert.Equal(t, tt.code, terrors.GetCode(err))
			if tt.msg != "" {
				assert.Equal(t, tt.msg, terrors.UserMessage(err))
			}
			assert.Equal(t, 0, n.NodeCount())
		})
	}
}

func TestAddEdgeDirected(t *testing.T) {
	n := newNetwork(t, Config{Directed: true, EdgeWidth: 2})
	require.NoError(t, n.AddNodes([]ID{"a", "b"}, nil))

	require.NoError(t, n.AddEdge("a", "b", nil))
	require.NoError(t, n.AddEdge("a", "b", Attrs{"arrows": "from", "width": 5}))
	require.NoError(t, n.AddEdge("b", "a", nil))

	edges := n.Edges()
	require.Len(t, edges, 3)
	assert.Equal(t, Attrs{"from": "a", "to": "b", "arrows": "to", "width": 2.0}, edges[0])
	assert.Equal(t, "from", edges[1]["arrows"])
	assert.Equal(t, 5, edges[1]["width"])
	assert.Equal(t, "b", edges[2]["from"])
}

func TestAddEdgeUndirectedDedup(t *testing.T) {
	n := newNetwork(t, Config{})
	require.NoError(t, n.AddNodes([]ID{"a", "b", "c"}, nil))

	require.NoError(t, n.AddEdge("a", "b", Attrs{"color": "red"}))
	require.NoError(t, n.AddEdge("a", "b", nil))
	require.NoError(t, n.AddEdge("b", "a", nil))
	require.NoError(t, n.AddEdge("b", "c", nil))

	edges := n.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, "red", edges[0]["color"])
	assert.NotContains(t, edges[0], "arrows")
	assert.Equal(t, 1.0, edges[0]["width"])
}

func TestAddEdgeUnknownEndpoint(t *testing.T) {
	n := newNetwork(t, Config{Directed: true})
	require.NoError(t, n.AddNode("a", "", "", nil))

	err := n.AddEdge("a", "missing", nil)
	require.Error(t, err)
	assert.True(t, terrors.Is(err, terrors.ErrCodeNodeNotFound))
	assert.Contains(t, err.Error(), "missing")

	err = n.AddEdge(1.5, "a", nil)
	assert.True(t, terrors.Is(err, terrors.ErrCodeInvalidID))
	assert.Equal(t, 0, n.EdgeCount())
}

func TestAddEdgeCopiesAttrs(t *testing.T) {
	n := newNetwork(t, Config{})
	require.NoError(t, n.AddNodes([]ID{1, 2}, nil))
	attrs := Attrs{"title": "x"}
	require.NoError(t, n.AddEdge(1, 2, attrs))

	assert.Equal(t, Attrs{"title": "x"}, attrs)
	attrs["title"] = "y"
	assert.Equal(t, "x", n.Edges()[0]["title"])
}

func TestSetRawOptions(t *testing.T) {
	n := newNetwork(t, Config{})
	require.NoError(t, n.SetRawOptions(`var options = {"physics": {"enabled": false}}`))

	s, err := n.Scene()
	require.NoError(t, err)
	assert.JSONEq(t, `{"physics": {"enabled": false}}`, s.Options)

	err = n.SetRawOptions("nothing here")
	assert.True(t, terrors.Is(err, terrors.ErrCodeInvalidOptions))
}
