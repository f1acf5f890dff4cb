/*
Package planner turns goal formulas into sequences of primitive arm
actions.

The blocks world is searched as an implicit graph: nodes wrap world
states, edges are the four primitive actions (arm left, arm right, pick,
drop), and drop legality is decided by the same physical-law predicate the
interpreter filters goals with. An A* search with a blocker-counting
admissible heuristic finds a lowest-cost action sequence to any state
satisfying some disjunct of the goal.

Plans are sequences of strings: the primitive actions "l", "r", "p", "d",
or a human-readable utterance. A goal that already holds produces the
single utterance "That is already true!".
*/
package planner
