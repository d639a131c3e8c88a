package pipeline

import "strings"

// isTableRow reports whether a trimmed line looks like a pipe table row.
func isTableRow(line string) bool {
	return len(line) >= 2 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

// isSeparatorRow reports whether a row only holds the header separator,
// e.g. |---|:---:|.
func isSeparatorRow(line string) bool {
	if !strings.Contains(line, "---") {
		return false
	}
	return strings.Trim(line, "|:- \t") == ""
}

// splitCells splits a row on | and trims each cell.
func splitCells(line string) []string {
	inner := line[1 : len(line)-1]
	cells := strings.Split(inner, "|")
	for i, c := range cells {
		cells[i] = formatInline(strings.TrimSpace(c))
	}
	return cells
}

// collectTable renders a contiguous run of table rows. The first row is the
// header; separator rows are dropped; every other row is a body row.
func collectTable(lines []string, start int) (string, int) {
	var header []string
	var body [][]string

	i := start
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if classify(line) != kindTableRow {
			break
		}
		if isSeparatorRow(line) {
			continue
		}
		if header == nil {
			header = splitCells(line)
			continue
		}
		body = append(body, splitCells(line))
	}

	var buf strings.Builder
	buf.WriteString("<table><thead><tr>")
	for _, cell := range header {
		buf.WriteString("<th>" + cell + "</th>")
	}
	buf.WriteString("</tr></thead><tbody>")
	for _, row := range body {
		buf.WriteString("<tr>")
		for _, cell := range row {
			buf.WriteString("<td>" + cell + "</td>")
		}
		buf.WriteString("</tr>")
	}
	buf.WriteString("</tbody></table>")
	return buf.String(), i
}
