/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the simulation core from where machine descriptions
live and from the adapters (HTTP, MCP, CLI) that drive it.

# Key Interfaces

  - MachineLoader: retrieves raw machine descriptions by name (directory, memory, Redis).
  - MachineStore: a MachineLoader that also accepts uploads and deletions.
  - Simulator: the engine surface used by the HTTP and MCP adapters.
*/
package ports
