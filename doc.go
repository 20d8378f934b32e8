/*
Package pedarprobe ingests pedar plantar-pressure recordings, organizes them
into a hierarchical data tree (subject - condition - trial - foot - stance),
and computes aggregate statistics bottom-up through that tree.

Experimental data arrives scattered over many files; the library builds one
labeled tree out of them, computes a per-sensor statistic (peak pressure or
pressure-time integral) at every stance leaf, and averages it upward through
every ancestor level. The tree can be restructured under a different level
layout, compressing levels into composite leaf names, to re-aggregate the
same raw data under alternate groupings.

# Architecture

The core tree (pkg/domain, pkg/analyse) is pure and I/O free. Parsing of the
guiding spreadsheet and the raw .asc exports is a collaborator behind the
ports.Source interface; exporting results to spreadsheets and heatmaps walks
the aggregated tree through read accessors. This Hexagonal separation keeps
the recursive engine reusable for other multi-layer datasets.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/pedarprobe/pedarprobe"
		"github.com/pedarprobe/pedarprobe/pkg/parse"
	)

	func main() {
		src := parse.NewSource(parse.Options{
			GuidePath:  "data/subjects/walking plantar pressure time slot.xlsx",
			Conditions: []string{"fast walking", "slow walking", "normal walking"},
		})

		session, err := pedarprobe.New(src)
		if err != nil {
			log.Fatal(err)
		}
		if err := session.Load(context.Background()); err != nil {
			log.Fatal(err)
		}

		// Aggregate peak pressure bottom-up; every node now carries the
		// per-sensor average of its subtree.
		if err := session.Peak(); err != nil {
			log.Fatal(err)
		}

		// Re-group by condition, compressing the other levels.
		byCondition, err := session.Restructure([]string{"root", "condition", "compress"})
		if err != nil {
			log.Fatal(err)
		}
		_ = byCondition
	}
*/
package pedarprobe
