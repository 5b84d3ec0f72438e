// Package javascript provides the dependency adapter for installed npm
// module trees.
//
// # Overview
//
// [ModuleTree] implements [deps.Adapter] by walking a directory (usually
// node_modules) and reading every package.json beneath it, at any depth:
//
//	a := javascript.NewModuleTree("node_modules")
//	records, err := a.Records(ctx)
//
// Only name, version, license and repository are read. The repository
// field may be a plain string or an object with a "url" field. Files that
// do not decode to that shape are skipped.
//
// # Development Dependencies
//
// [NewProductionTree] additionally reads package-lock.json and leaves out
// every package the lockfile marks as "dev":
//
//	a := javascript.NewProductionTree("node_modules", "package-lock.json")
//
// [deps.Adapter]: github.com/matzehuels/noticecheck/pkg/deps.Adapter
package javascript
