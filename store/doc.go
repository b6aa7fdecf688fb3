// Package store loads snapshot versions for comparison.
//
// A Source resolves version ids to *snapshot.Version values. Three
// implementations are provided:
//
//   - MemorySource holds versions in process, mostly for tests and embedding.
//   - FileSource reads one <version>.yaml, <version>.yml or <version>.json
//     file per version from a directory.
//   - RedisSource reads JSON-encoded versions from Redis keys of the form
//     <prefix>:version:<id>.
//
// Every Source returns a differr error of KindNotFound wrapping
// differr.ErrVersionNotFound or differr.ErrLibraryNotFound for unknown ids.
// Loaded versions are normalized and validated before they are returned.
package store
