// Package export is the result-export collaborator: it walks an aggregated
// tree through the read accessors on domain.Node and writes spreadsheets and
// foot heatmap images. It never computes statistics itself.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

// WriteStat writes the named statistic of every node at the given level to an
// xlsx workbook. Rows are level nodes labeled by their path below the root,
// columns are the sensor channel IDs in ascending order.
func WriteStat(path string, root *domain.Node, levels domain.LevelMap, level, stat string) error {
	nodes, err := levels.CollectLevel(root, level)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no nodes found at level %q", level)
	}

	first, ok := nodes[0].Computed(stat)
	if !ok {
		return fmt.Errorf("statistic %q has not been computed for level %q", stat, level)
	}
	channels := sortedChannels(first)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, stat); err != nil {
		return err
	}
	sheet = stat

	header := make([]any, 0, len(channels)+1)
	header = append(header, level)
	for _, ch := range channels {
		header = append(header, ch)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, node := range nodes {
		values, ok := node.Computed(stat)
		if !ok {
			return fmt.Errorf("statistic %q missing on node %q", stat, nodeLabel(node))
		}
		row := make([]any, 0, len(channels)+1)
		row = append(row, nodeLabel(node))
		for _, ch := range channels {
			v, ok := values[ch]
			if !ok {
				return fmt.Errorf("node %q lacks channel %d for statistic %q", nodeLabel(node), ch, stat)
			}
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// nodeLabel joins the node's path below the root for use as a row label,
// e.g. "S4 fast walking".
func nodeLabel(n *domain.Node) string {
	path := n.Path()
	if len(path) > 1 {
		path = path[1:]
	}
	return strings.Join(path, " ")
}

func sortedChannels(stat domain.ChannelStat) []int {
	channels := make([]int, 0, len(stat))
	for ch := range stat {
		channels = append(channels, ch)
	}
	sort.Ints(channels)
	return channels
}
