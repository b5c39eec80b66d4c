// Command gen-machines writes the sample machine library used by the examples
// and the CLI documentation.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

var extensions = map[domain.Kind]string{
	domain.KindFinite:           ".dfa",
	domain.KindNondeterministic: ".nfa",
	domain.KindPushdown:         ".pda",
	domain.KindTuring:           ".tm",
}

func main() {
	format := flag.String("format", "text", "Output format: text, yaml or json")
	flag.Parse()

	targetDir := "examples/machines"
	if flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating sample machines in: %s\n", targetDir)

	for _, b := range samples() {
		desc := b.Build()
		table := domain.NewTable(desc)
		check(validator.Validate(table))

		ext := extensions[table.Kind()]
		if *format != "text" {
			ext = "." + *format
		}
		data, err := compiler.Encode(desc, compiler.Format(*format))
		check(err)

		path := filepath.Join(targetDir, desc.Name+ext)
		check(os.WriteFile(path, data, 0o644))
		fmt.Printf("  %s (%s, %d states, %d rules)\n", path, table.Kind().Title(), table.NumStates(), table.NumRules())
	}

	fmt.Println("Done. Verify contents in", targetDir)
}

func samples() []*dsl.Builder {
	// Words over {a, b} ending in "ab".
	endsAB := dsl.New("ends-ab").
		Start("q0").State("q1").Final("q2").
		Symbols("a", "b").
		From("q0").On("a").To("q1").
		From("q0").On("b").To("q0").
		From("q1").On("a").To("q1").
		From("q1").On("b").To("q2").
		From("q2").On("a").To("q1").
		From("q2").On("b").To("q0")

	// a* or (ab)*, choosing the branch with epsilon moves.
	starOrPairs := dsl.New("a-star-or-ab-star").
		Kind(domain.KindNondeterministic).
		Start("s").Final("p").Final("r").State("r2").
		Symbols("a", "b").
		From("s").Epsilon().To("p").
		From("s").Epsilon().To("r").
		From("p").On("a").To("p").
		From("r").On("a").To("r2").
		From("r2").On("b").To("r")

	// a^n b^n for n >= 1, counting with x on the stack.
	anbn := dsl.New("anbn").
		Kind(domain.KindPushdown).
		Start("q0").Final("q1").
		Symbols("a", "b", "x").
		From("q0").On("a").Push("x").To("q0").
		From("q0").On("b").Pop("x").To("q1").
		From("q1").On("b").Pop("x").To("q1")

	// Adds one to a binary number; the head starts on the most significant bit.
	increment := dsl.New("binary-increment").
		Kind(domain.KindTuring).
		Start("seek").State("carry").Final("done").
		Symbols("0", "1", "_").
		From("seek").Read("0").Right().To("seek").
		From("seek").Read("1").Right().To("seek").
		From("seek").Read("_").Left().To("carry").
		From("carry").Read("1").Write("0").Left().To("carry").
		From("carry").Read("0").Write("1").Right().To("done").
		From("carry").Read("_").Write("1").Right().To("done")

	return []*dsl.Builder{endsAB, starOrPairs, anbn, increment}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
