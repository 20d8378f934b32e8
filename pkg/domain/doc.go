/*
Package domain contains the core data model for the pedarprobe analysis engine.

It defines the hierarchical node tree that organizes plantar-pressure
recordings (subject - condition - trial - foot - stance), the immutable leaf
Record holding a time-indexed sensor table, the LevelMap that names each depth
of the tree, and the Restructure operation that rebuilds a tree under a
different level layout. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Record: an immutable time-indexed table of per-sensor readings with its
    stance time bounds.
  - Node: a named tree node that either holds branch nodes or wraps exactly
    one Record (leaf).
  - LevelMap: the mapping from semantic level name ("subject", "stance", ...)
    to its depth from the root.
  - Restructure: rebuilds a tree under a new level layout, compressing the
    unnamed levels into composite leaf names.
*/
package domain
