/*
Package dsl provides a fluent builder for world states.

It is the programmatic alternative to YAML world documents, aimed at
tests and embedded use:

	w, err := dsl.New().
		Object("b", domain.FormBox, domain.SizeLarge, "yellow").
		Object("a", domain.FormBall, domain.SizeSmall, "black").
		Stack("b", "a").
		Stack().
		Build()
*/
package dsl
