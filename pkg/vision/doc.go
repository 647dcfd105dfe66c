// Package vision locates the subject of a photo by comparing it against a
// uniform border color.
//
// A photo is assumed to be a subject on a uniform background. The background
// color is sampled from the top-left corner (SampleCorner), every pixel is
// compared against it (Difference), and the tight envelope of all differing
// pixels is the subject's bounding box (DifferenceBounds).
//
// Coordinates are 0-based from the top-left corner. Rectangles use an
// inclusive min and an exclusive max, matching image.Rectangle.
package vision
