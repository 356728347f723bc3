// Package imgstore implements a single-file, content-addressed image
// database.
//
// A store file holds a fixed 64-byte header, a preallocated table of
// fixed-size metadata slots, and a growing append-only blob region of raw
// JPEG payloads. Each slot addresses up to three variants of one image
// (original, small, thumbnail); reduced variants are materialised lazily on
// first read. Identical content inserted under distinct identifiers shares
// the original blob.
//
// A Store handle is single-writer and not safe for concurrent use. Every
// mutating operation updates the in-memory slot mirror and writes the
// affected slot record and the header back to disk before returning.
package imgstore
