/*
Package search implements a generic A* search over implicit graphs.

The graph is expressed as a capability set: anything that can enumerate the
outgoing edges of a node and name nodes deterministically can be searched.
Nodes are never compared directly; identity is the string returned by
NodeID, so value types with cheap clones work well.

The priority queue admits stale entries instead of supporting decrease-key:
when a better path to an open node is found it is simply re-enqueued, and
outdated entries are skipped at pop time. Closed nodes are not reopened,
which preserves optimality as long as the heuristic is admissible.
*/
package search
