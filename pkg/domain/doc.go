/*
Package domain contains the core domain models for the Shrdlite engine.

It defines the fundamental entities of the blocks world, such as Objects,
the WorldState, the Command AST delivered by a parser, and the goal language
(Literals combined into DNF formulas). This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Object: A shaped, sized, colored thing living in a stack (or the arm).
  - WorldState: A row of stacks, the arm column, and the held object.
  - Command: The parsed user intent (take / move / put) with entities,
    quantifiers, and spatial locations.
  - Literal / Conjunction / DNF: The goal language emitted by the
    interpreter and consumed by the planner.
  - IsValid: The physical-law predicate shared by the interpreter (goal
    filtering) and the state graph (drop legality).
*/
package domain
