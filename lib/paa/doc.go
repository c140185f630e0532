// Package paa implements Piecewise Aggregate Approximation.
//
// PAA shortens a sequence of length L to K values by cutting it into K frames
// of L/K samples and keeping the mean of each frame. When K does not divide L
// the samples on frame boundaries are split between neighbouring frames, so
//
//	sum(output) * L/K == sum(input)
//
// up to rounding for every L and K.
//
// Aggregate is the plain function. A Transformer carries a validated
// settings.PAASettings and adds labeled, multi-dimensional and matrix inputs
// on top of it.
package paa
