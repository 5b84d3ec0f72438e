// Package license decides how each dependency's license is disclosed.
//
// A dependency is disclosed either by a short identifier ("MIT",
// "MIT OR Apache-2.0"), which is collected into the set of licenses in
// use, or by full license text printed inline next to it. [Resolver]
// applies curated overrides ([Config], [Table]) before the record's own
// license, and falls back to license files read from disk
// ([ReadLicenseFiles]).
//
// The bundled [Library] holds one full text per identifier. [Library.Filter]
// picks the entries matching the identifiers in use, either by substring
// ([MatchSubstring]) or by exact token ([MatchTokens]).
//
// Remote override texts are downloaded once at load time through a
// [Fetcher]; [RemoteFetcher] caches them between runs.
package license
