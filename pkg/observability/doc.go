/*
Package observability defines the Prometheus metric set for the Shrdlite
pipeline.

The engine records one observation per command: how interpretation went,
how hard the search worked, and how long the resulting plan is. Hosts
that serve HTTP expose the registry on /metrics.
*/
package observability
