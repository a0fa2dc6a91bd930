// Package markdown renders markdown page sources into wiki markup. Parsing
// is done by goldmark; a custom node renderer emits the wiki dialect and an
// AST transformer rewrites relative link targets with the page prefix.
package markdown
