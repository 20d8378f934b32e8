package motion

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// WriteCapture writes a parsed capture to an xlsx workbook, one sheet per
// block. Each row is one (gait, parameter, component) series followed by its
// sample values.
func WriteCapture(path string, c *Capture) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeBlock(f, BlockJoints, c.Joints, true); err != nil {
		return err
	}
	if err := writeBlock(f, BlockModelOutputs, c.ModelOutputs, false); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeBlock(f *excelize.File, name string, gaits []Gait, first bool) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return err
		}
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	rowIdx := 1
	header := []any{"gait", "parameter", "component", "values..."}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for g, gait := range gaits {
		for _, param := range sortedKeys(gait) {
			components := gait[param]
			for _, component := range sortedKeys(components) {
				rowIdx++
				row := []any{fmt.Sprintf("gait %d", g+1), param, component}
				for _, v := range components[component] {
					row = append(row, v)
				}
				cell, err := excelize.CoordinatesToCellName(1, rowIdx)
				if err != nil {
					return err
				}
				if err := f.SetSheetRow(name, cell, &row); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
