// Package notice renders the third-party notice document and detects
// whether it changed since the last run.
//
// [Render] is a pure fold over a [license.Resolution] and the bundled
// license texts. [Detector.Check] stages the fresh document as
// <name>-new.txt, compares it with the committed <name>.txt ignoring
// carriage returns, hands a unified diff to a [DiffPrinter] when they
// differ, and then renames the staged file over the committed one.
package notice
