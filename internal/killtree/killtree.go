// Package killtree provides the process-grouping primitive that
// guarantees a wrapped process's entire descendant tree is terminated
// together, with no surviving orphans. On Windows this is a Job Object
// configured with JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE (spec.md §4.1,
// component C1); there is no portable equivalent, so non-Windows builds
// only keep the interface compiling.
package killtree

import "errors"

// ErrResourceExhausted is returned by Create when the OS refuses to
// allocate a new grouping object.
var ErrResourceExhausted = errors.New("killtree: resource exhausted")

// ErrAttachFailed is returned by Attach when a process cannot be added to
// the group — for example because it is already a member of another,
// incompatible group.
var ErrAttachFailed = errors.New("killtree: attach failed")

// ErrUnsupportedPlatform is returned by every operation on a non-Windows
// build. wsw only runs on Windows; this exists purely so the package
// still type-checks on other platforms.
var ErrUnsupportedPlatform = errors.New("killtree: unsupported platform")
