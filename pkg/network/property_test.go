package network

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRegistryInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Directed registries keep every parallel edge; undirected keep one.
	properties.Property("parallel edges", prop.ForAll(
		func(count int, directed bool, reverse bool) bool {
			n, err := New(Config{Directed: directed})
			if err != nil {
				return false
			}
			_ = n.AddNode("a", "", "", nil)
			_ = n.AddNode("b", "", "", nil)
			for i := 0; i < count; i++ {
				src, dst := "a", "b"
				if reverse && i%2 == 1 {
					src, dst = dst, src
				}
				if err := n.AddEdge(src, dst, nil); err != nil {
					return false
				}
			}
			if directed {
				return n.EdgeCount() == count
			}
			return n.EdgeCount() == 1
		},
		gen.IntRange(1, 40),
		gen.Bool(),
		gen.Bool(),
	))

	// Adding a node twice never changes count or attributes.
	properties.Property("add node is idempotent", prop.ForAll(
		func(id string, first, second string) bool {
			n, _ := New(Config{})
			if err := n.AddNode(id, first, "", nil); err != nil {
				return false
			}
			before, _ := n.Node(id)
			label := before["label"]
			if err := n.AddNode(id, second, "box", Attrs{"color": "blue"}); err != nil {
				return false
			}
			after, _ := n.Node(id)
			return n.NodeCount() == 1 && after["label"] == label && after["shape"] == DefaultShape
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// Edges to unknown nodes fail and leave the edge list alone.
	properties.Property("unknown endpoint never mutates", prop.ForAll(
		func(known []int, missing int) bool {
			n, _ := New(Config{Directed: true})
			ids := make([]ID, 0, len(known))
			for _, k := range known {
				if k != missing {
					ids = append(ids, k)
				}
			}
			if err := n.AddNodes(ids, nil); err != nil {
				return false
			}
			if len(ids) == 0 {
				return n.AddEdge(missing, missing, nil) != nil && n.EdgeCount() == 0
			}
			err1 := n.AddEdge(ids[0], missing, nil)
			err2 := n.AddEdge(missing, ids[0], nil)
			return err1 != nil && err2 != nil && n.EdgeCount() == 0
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.IntRange(0, 100),
	))

	// Keyword nodes scale by 1.2 and the weight, others by 0.9.
	properties.Property("keyword styling", prop.ForAll(
		func(size, font, weight float64, keyword bool) bool {
			cfg := Config{NodeSize: size, FontSize: font, KeyWeight: weight}
			if keyword {
				cfg.Keywords = []ID{"k"}
			}
			n, _ := New(cfg)
			_ = n.AddNode("k", "", "", nil)
			node, _ := n.Node("k")
			gotSize := node["size"].(float64)
			gotFont := node["font"].(map[string]any)["size"].(float64)
			if keyword {
				return gotSize == size*1.2 && gotFont == font*weight
			}
			return gotSize == size*0.9 && gotFont == font*0.9
		},
		gen.Float64Range(1, 100),
		gen.Float64Range(1, 100),
		gen.Float64Range(0.5, 3),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
