// Package pkg provides the core libraries for noticecheck.
//
// # Overview
//
// Noticecheck produces a project's third-party notice: one block per
// dependency naming its license, followed by the full text of every license
// in use. Running it in CI keeps the committed notice in sync with the
// dependency graph. The pkg directory is organized into four main areas:
//
//  1. [deps] - Dependency adapters (Cargo, npm)
//  2. [license] - Overrides, license resolution, and the bundled license library
//  3. [notice] - Rendering and change detection
//  4. [pipeline] - Orchestration (collect → resolve → render → detect)
//
// # Architecture
//
// The typical data flow through noticecheck:
//
//	Cargo.toml / node_modules
//	         ↓
//	    [deps] packages (dependency records)
//	         ↓
//	    [license] package (overrides, license decision, bundled texts)
//	         ↓
//	    [notice] package (document, diff against the committed notice)
//	         ↓
//	    ThirdPartyNotice.txt
//
// # Quick Start
//
//	adapter := &rust.CargoMetadata{Manifest: "Cargo.toml"}
//	records, _ := adapter.Records(ctx)
//
//	resolver := &license.Resolver{}
//	res, _ := resolver.Resolve(records, nil)
//
//	lib, _ := license.OpenLibrary("licenses")
//	bundled, _ := lib.Filter(res.InUse, license.MatchSubstring)
//
//	doc, _ := notice.Document(res, bundled)
//	report, _ := (&notice.Detector{}).Check("ThirdPartyNotice.txt", doc)
//	if report.Changed {
//	    os.Exit(1)
//	}
//
// # Main Packages
//
// [deps] - The [deps.Record] type shared by all adapters, deduplication, and
// ecosystem detection. [deps/rust] reads `cargo metadata`; [deps/javascript]
// walks node_modules and optionally drops dev packages listed in
// package-lock.json.
//
// [license] - noticecheck.toml parsing ([license.LoadConfig]), override
// tables, the per-dependency [license.Resolver], and the bundled
// [license.Library] filtered by the licenses in use.
//
// [notice] - Deterministic rendering ([notice.Render]) and the
// [notice.Detector], which compares with the committed notice ignoring
// carriage returns and prints a unified diff.
//
// ## Infrastructure
//
// [cache] - File and Redis caches for downloaded license texts.
//
// [integrations] - HTTP client with caching and retries; [integrations/github]
// turns github.com file links into raw downloads.
//
// [httputil] - Retry helpers.
//
// [observability] - Hooks for pipeline, cache, and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/deps
// [deps/rust]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/deps/rust
// [deps/javascript]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/deps/javascript
// [license]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/license
// [notice]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/notice
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/cache
// [integrations]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/integrations
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/integrations/github
// [httputil]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/noticecheck/pkg/errors
package pkg
