// Package merging merges whole files.
//
// Each file is described by a FileSet naming three versions:
// 1. Base: the common ancestor both sides started from.
// 2. Local: the version being merged into, usually the file on disk.
// 3. Remote: the incoming version.
//
// The package coordinates:
// - Reading the versions from disk or from git revisions.
// - Short-circuiting merges where one side is unchanged.
// - Running the line merge and rendering conflict markers.
// - Merging many files in parallel and writing the results.
package merging
