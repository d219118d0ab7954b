package graph_test

import (
	"fmt"

	"github.com/matzehuels/waypath/pkg/graph"
)

func ExampleGraph() {
	g := graph.New()
	_ = g.AddEdge("Porto", "Lisbon", 313)
	_ = g.AddEdge("Porto", "Braga", 55)
	_ = g.AddEdge("Lisbon", "Faro", 278)

	nb, _ := g.Neighbors("Porto")
	w, _ := g.Weight("Lisbon", "Porto")
	fmt.Println("Neighbors of Porto:", nb)
	fmt.Println("Lisbon-Porto:", w)
	fmt.Println("Nodes:", g.NodeCount(), "Edges:", g.EdgeCount())
	// Output:
	// Neighbors of Porto: [Braga Lisbon]
	// Lisbon-Porto: 313
	// Nodes: 4 Edges: 3
}
