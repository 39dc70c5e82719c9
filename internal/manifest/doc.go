// Package manifest locates the project manifest from a source root.
//
// Build tools leave recognisable generated-source directories behind, and
// each one implies where the manifest lives:
//   - Gradle: build/generated/source/apt<variant>
//   - Maven: target/generated-sources
//   - Eclipse: .apt_generated
//
// A Chain tries those strategies in that order and uses the first whose
// pattern matches the whole source root. When none match, a bounded blind
// search walks down and then up the filesystem. Every strategy answers
// with an existing file or nothing; guessed paths are never returned.
package manifest
