// Package styles maps connection weights and output-node scores to visual
// styles.
//
// Connection color is chosen from seven weight bands (see [CategoryFor]);
// line width grows with the weight magnitude (see [Widths.For]). Output nodes
// can be tinted by a per-node score (see [NodeCategoryFor]). A [Palette]
// turns the abstract categories into concrete colors.
package styles
