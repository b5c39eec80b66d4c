package automata

import _ "embed"

// Version is the release of the automata module, read from the VERSION file.
//
//go:embed VERSION
var Version string
