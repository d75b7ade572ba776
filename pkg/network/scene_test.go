package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScene(t *testing.T) (*Network, Scene) {
	t.Helper()
	n := newNetwork(t, Config{Directed: true, Heading: "words", Height: "1050px"})
	require.NoError(t, n.ImportGraph(weightedGraph(), ImportOptions{}))
	s, err := n.Scene()
	require.NoError(t, err)
	return n, s
}

func TestScene(t *testing.T) {
	_, s := buildScene(t)

	assert.Len(t, s.Nodes, 3)
	assert.Len(t, s.Edges, 2)
	assert.Equal(t, "words", s.Heading)
	assert.Equal(t, "1050px", s.Height)
	assert.Equal(t, "100%", s.Width)
	assert.Equal(t, "#ffffff", s.BGColor)
	assert.True(t, s.Directed)
	assert.Equal(t, []ID{"A", "B", "C"}, s.NodeIDs())
}

func TestSceneIsSnapshot(t *testing.T) {
	n, s := buildScene(t)
	require.NoError(t, n.AddNode("Z", "", "", nil))
	n.Options().SetEdgeColor("#abcdef")
	s.Nodes[0]["label"] = "changed"

	assert.Len(t, s.Nodes, 3)
	assert.NotContains(t, s.Options, "#abcdef")
	a, _ := n.Node("A")
	assert.Equal(t, "A", a["label"])
}

func TestSceneNestedAttrsAreCopied(t *testing.T) {
	n, s := buildScene(t)
	s.Nodes[0]["font"].(map[string]any)["size"] = 999

	a, _ := n.Node("A")
	assert.NotEqual(t, 999, a["font"].(map[string]any)["size"])

	again, err := n.Scene()
	require.NoError(t, err)
	assert.NotEqual(t, 999, again.Nodes[0]["font"].(map[string]any)["size"])
}

func TestAttrsCloneIsDeep(t *testing.T) {
	orig := Attrs{
		"font":   map[string]any{"size": 12},
		"color":  Attrs{"border": "#000"},
		"dashes": []any{5, map[string]any{"gap": 2}},
		"none":   map[string]any(nil),
	}
	c := orig.Clone()
	c["font"].(map[string]any)["size"] = 30
	c["color"].(Attrs)["border"] = "#fff"
	c["dashes"].([]any)[1].(map[string]any)["gap"] = 9

	assert.Equal(t, 12, orig["font"].(map[string]any)["size"])
	assert.Equal(t, "#000", orig["color"].(Attrs)["border"])
	assert.Equal(t, 2, orig["dashes"].([]any)[1].(map[string]any)["gap"])
	assert.Nil(t, c["none"])
}

func TestSceneOptionsStable(t *testing.T) {
	n, first := buildScene(t)
	second, err := n.Scene()
	require.NoError(t, err)
	assert.Equal(t, first.Options, second.Options)
}

func TestSceneMarshalJSON(t *testing.T) {
	_, s := buildScene(t)
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"nodes", "edges", "options", "height", "width", "heading", "bgcolor", "directed"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "true", string(doc["directed"]))

	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(doc["nodes"], &nodes))
	for _, node := range nodes {
		for _, key := range []string{"id", "label", "shape", "size", "font"} {
			assert.Contains(t, node, key)
		}
	}
}

func TestSceneJSONRoundTrip(t *testing.T) {
	_, s := buildScene(t)
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Scene
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Options, back.Options)
	assert.Equal(t, s.Heading, back.Heading)
	assert.True(t, back.Directed)
	assert.Equal(t, []ID{"A", "B", "C"}, back.NodeIDs())
}

func TestSceneJSONKeepsUndirectedArrows(t *testing.T) {
	s := Scene{
		Nodes:   []Attrs{{"id": "a"}, {"id": "b"}},
		Edges:   []Attrs{{"from": "a", "to": "b", "arrows": "to"}},
		Options: "{}",
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Scene
	require.NoError(t, json.Unmarshal(data, &back))
	assert.False(t, back.Directed, "the directed key wins over arrows")
}

func TestSceneJSONWithoutDirectedKey(t *testing.T) {
	var s Scene
	require.NoError(t, json.Unmarshal([]byte(`{"edges":[{"from":"a","to":"b","arrows":"to"}]}`), &s))
	assert.True(t, s.Directed)

	require.NoError(t, json.Unmarshal([]byte(`{"edges":[{"from":"a","to":"b"}]}`), &s))
	assert.False(t, s.Directed)
}

func TestEmptySceneMarshal(t *testing.T) {
	data, err := json.Marshal(Scene{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[],"options":{},"height":"","width":"","heading":"","bgcolor":"","directed":false}`, string(data))
}

func TestHasLinkTitles(t *testing.T) {
	s := Scene{Nodes: []Attrs{{"id": "a"}, {"id": "b", "title": "plain"}}}
	assert.False(t, s.HasLinkTitles())

	s.Nodes = append(s.Nodes, Attrs{"id": "c", "title": `<a href="https://example.org">c</a>`})
	assert.True(t, s.HasLinkTitles())
}

func TestSceneString(t *testing.T) {
	n, _ := buildScene(t)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(n.String()), &summary))
	assert.Equal(t, []any{"A", "B", "C"}, summary["Nodes"])
	assert.Equal(t, "words", summary["Heading"])
}
