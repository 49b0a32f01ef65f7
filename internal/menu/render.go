package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

// ruleWidth is the length of the separator printed under the header.
const ruleWidth = 84

const rowFormat = "%-4v | %-30s | %-15s | %-15s | %-15s\n"

// RenderTable writes games as fixed-width columns: id, title, platform,
// genre, status. An empty slice prints a single "no games" line.
func RenderTable(w io.Writer, games []types.GameRecord) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games found in the catalog.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, rowFormat, "ID", "Title", "Platform", "Genre", "Status")
	sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for _, g := range games {
		fmt.Fprintf(&sb, rowFormat, g.ID, g.Title, g.Platform, g.Genre, g.Status)
	}

	// Trailing padding from the last column is noise on a terminal.
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
