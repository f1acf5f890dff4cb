/*
Package ports defines the driven ports (interfaces) for the Shrdlite
engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various parsers and storage backends.

# Key Interfaces

  - Parser: Turns a raw utterance into parse trees (the grammar and
    tokenizer live outside the core).
  - WorldStore: Persists named world states between commands.
  - DistributedLocker: Serializes command execution per world across
    replicas.
*/
package ports
