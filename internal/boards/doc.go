// Package boards builds and queries the board database.
//
// The database is a flat text artifact describing every buildable target of a
// configuration-driven source tree. Each line records a target's status,
// architecture, CPU, SoC, vendor, board name, target name, config name and
// maintainer list. The artifact is regenerated from scratch on every build:
// fragment files under configs/ are scanned in parallel for per-target
// parameters, MAINTAINERS files are parsed for status and ownership, and the
// merged result is columnated, sorted and written out.
//
// The package also provides the query-time half of the same data model: the
// artifact can be read back into a Boards collection and subsets of targets
// selected with a small boolean term language (AND within a term, OR across
// terms, with regex exclusion).
package boards
