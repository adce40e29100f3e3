// Package tileforge turns a tile inventory (a letter, a point value, and
// a tile count) into manufacturable artifacts: a single SVG cut/engrave
// layout for the whole set, and one watertight STL solid per unique
// letter/value pair with the letter and value embossed on or debossed
// into the tile's top face.
package tileforge
