/*
Package runner implements the interactive input loop that feeds symbol strings
to a simulation engine.

It acts as the bridge between the engine and the outside world. The runner
prompts for input through a pluggable handler, tokenises and sanitises each
line, runs the machine and hands the result back to the handler for display.

# Key Components

  - Runner: the loop. It stops on EOF, on "exit"/"quit", or after one run in single-shot mode.
  - IOHandler: decouples how input is read and results are shown.
  - TextHandler: console prompts and the text (or rendered markdown) report.
  - JSONHandler: newline-delimited JSON for scripted use.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithSignals(true),
	)

	if err := r.Run(ctx, engine, table); err != nil {
		log.Fatal(err)
	}
*/
package runner
