/*
Package dsl provides a Go DSL for building machine descriptions programmatically.

It lets tests and embedding programs define automata with a fluent builder instead
of text, YAML or JSON files.

Example usage:

	b := dsl.New("balanced").Kind(domain.KindPushdown)
	b.Start("q0").Final("q1")
	b.Symbols("a", "b", "x")

	b.From("q0").On("a").Push("x").To("q0")
	b.From("q0").On("b").Pop("x").To("q1")
	b.From("q1").On("b").Pop("x").To("q1")

	loader, err := b.Loader() // a ports.MachineLoader for automata.New
*/
package dsl
