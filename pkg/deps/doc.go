// Package deps defines the normalized dependency model shared by all
// ecosystem adapters.
//
// # Overview
//
// noticecheck reads already-resolved dependency lists from two ecosystems:
//
//   - Cargo crates, via the `cargo metadata` resolver ([cargo])
//   - Installed npm module trees, via package.json files ([npm])
//
// Each adapter implements [Adapter] and returns a slice of [Record]. The
// records are consumed by the license resolver and never modified.
//
// # Records
//
// A [Record] carries the package identity (Name, Version), an optional
// Repository URL and the license signal reported by the ecosystem:
//
//   - License: a short identifier such as "MIT" or "MIT OR Apache-2.0"
//   - HasLicenseFile: the package ships its full license text instead
//
// A name@version pair is unique within one adapter's output; [Dedupe]
// enforces this by keeping the first occurrence. Every resolved version of
// a package is listed, since each may carry a different license.
//
// # Detection
//
// [Detect] picks an [Ecosystem] from an input path:
//
//	eco, err := deps.Detect("Cargo.toml", cargo.Ecosystem, npm.Ecosystem)
//
// [cargo]: github.com/matzehuels/noticecheck/pkg/deps/cargo
// [npm]: github.com/matzehuels/noticecheck/pkg/deps/npm
package deps
