// Package combat defines the shared domain types for combat resolution:
// combatant snapshots, status effects, yield personalities, contested
// attack results, and live session state.
//
// The package holds data and pure rules only. Rolling dice and resolving
// exchanges belong to the resolver, duel, and tactical packages; owning and
// guarding live sessions belongs to the session package.
package combat
