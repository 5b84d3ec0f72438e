// Package rust provides the dependency adapter for Rust crates.
//
// # Overview
//
// [CargoMetadata] implements [deps.Adapter] on top of the Cargo resolver:
// it runs `cargo metadata --format-version 1` for a manifest and converts
// every crate of the resolved graph into a [deps.Record]. Normal, dev and
// build dependencies are all included at any depth.
//
//	a := &rust.CargoMetadata{Manifest: "Cargo.toml"}
//	records, err := a.Records(ctx)
//
// Crates are ordered by name, then by version ascending. Every resolved
// version of a crate is listed, since versions may differ in license.
//
// # License Signals
//
// Cargo reports either a `license` expression or a `license_file` path.
// The path is resolved against the crate's manifest directory and kept in
// [deps.Record.LicenseFile]. A crate with neither is an error.
//
// # Captured Metadata
//
// Set MetadataFile to read the output of a previous `cargo metadata` run
// instead of invoking cargo, or use [ParseMetadata] directly.
//
// [deps.Adapter]: github.com/matzehuels/noticecheck/pkg/deps.Adapter
// [deps.Record]: github.com/matzehuels/noticecheck/pkg/deps.Record
// [deps.Record.LicenseFile]: github.com/matzehuels/noticecheck/pkg/deps.Record
package rust
