// Package canvas resizes a trimmed subject and centers it on a fixed-size
// frame.
package canvas
