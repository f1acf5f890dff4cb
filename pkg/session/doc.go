/*
Package session implements world session management and persistence
orchestration.

Each stored world is guarded by a gate that serializes command
execution: Execute loads the world, runs the pipeline, and replays the
winning plan back into the store as one unit. Waiting on a gate
respects context cancellation, and an optional distributed locker
extends the guarantee across replicas. One command runs against one
world at a time.
*/
package session
