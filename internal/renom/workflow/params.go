// Package workflow wires identifier, probe, generator, and engine into the
// four rename operations, validating inputs before any mutation and
// reporting outcomes through the renomlog/prompt collaborators
// (spec.md §4.6).
package workflow

import (
	"github.com/ziyabahceci/renom/internal/renom/identifier"
)

// Params is the typed input every rename operation accepts, whether
// supplied directly (CLI flags) or gathered interactively (wizard
// prompting). EntityName selects the plugin/target/module to rename and is
// ignored for a project rename.
type Params struct {
	ProjectRoot string
	EntityName  string
	NewName     string
}

// Kind identifies which of the four rename operations a set of Params is
// for; it reuses identifier.Kind since the entity classes are the same.
type Kind = identifier.Kind

// Operation kind aliases for call sites that want workflow.KindProject
// rather than identifier.KindProject.
const (
	KindProject = identifier.KindProject
	KindPlugin  = identifier.KindPlugin
	KindTarget  = identifier.KindTarget
	KindModule  = identifier.KindModule
)
