// Package stegmark hides short binary payloads inside images so they
// survive recompression, resizing and format conversion, and recovers
// them later without the original image.
//
// The payload is wrapped in a fixed-size length-prefixed frame and
// embedded redundantly: the image is partitioned into tiles and every
// tile carries a full, independent copy of the frame in its frequency
// domain (Haar DWT, then DCT and SVD quantization per block).
// Extraction decodes the whole frame and every tile, validates each
// candidate against the frame layout and majority-votes across them, so
// one destroyed tile does not lose the payload.
//
// The package works entirely in memory and keeps no state between
// calls; independent embed/extract calls may run concurrently without
// coordination.
package stegmark
