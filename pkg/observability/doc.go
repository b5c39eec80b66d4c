/*
Package observability provides tools for monitoring the automata engine.

Metrics turns the engine lifecycle hooks into Prometheus collectors (runs by kind
and verdict, steps, run durations, validation failures), ready to be served on
/metrics by the HTTP adapter or any promhttp handler.
*/
package observability
