// Package scene defines the scene description produced by script
// evaluation: primitives, placements and named parts.
package scene
