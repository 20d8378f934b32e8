/*
Package ports defines the boundary interfaces between the pedarprobe core and
its collaborators, following the Ports & Adapters pattern.

The core never inspects file paths or raw text: the parsing collaborator
(a Source implementation) does all raw-format work and hands over finished
leaf-construction requests; the export side walks the aggregated tree through
the read accessors on domain.Node.
*/
package ports
