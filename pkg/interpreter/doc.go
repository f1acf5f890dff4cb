/*
Package interpreter resolves parsed commands against a world state and
emits goal formulas in disjunctive normal form.

Referring expressions are resolved recursively: a description may nest a
location clause whose delimiting entity is itself a description. The
quantifiers ("the", "any", "all") dictate how the resolved source and
destination sets combine into disjuncts, and every candidate pair is
filtered through the shared physical-law predicate before it may appear
in a goal.

Three things can go wrong, each with its own error: a description that
matches nothing, a command whose every reading violates a physical law,
and a "the" that picks out more than one object. The last carries the
candidates so a host can ask the user to clarify.
*/
package interpreter
