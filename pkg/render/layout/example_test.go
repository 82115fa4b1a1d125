package layout_test

import (
	"fmt"

	"github.com/matzehuels/nnviz/pkg/render/layout"
)

func ExampleBuild() {
	net, err := layout.Build([]int{3, 1})
	if err != nil {
		panic(err)
	}

	for _, l := range net.Layers {
		fmt.Printf("layer %d (y=%.0f):", l.Index, l.Y)
		for _, n := range l.Nodes {
			fmt.Printf(" %.1f", n.X)
		}
		fmt.Println()
	}
	// Output:
	// layer 0 (y=0): 0.0 1.0 2.0
	// layer 1 (y=6): 1.0
}
