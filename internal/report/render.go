// Package report turns plain-text venue optimization reports into HTML
// for the display region of the web UI.
package report

import (
	"html"
	"strings"
)

// Render converts a newline-delimited report into HTML. Each line is
// escaped, then decorated based on its leading marker: venue-header lines
// are wrapped in <strong>, section-break lines are surrounded by <br>.
// Lines are joined with <br>, preserving the original order.
//
// Render is a pure function; callers own the final assignment into the
// display region. The only markup it ever emits is <strong> and <br>, so
// report text influenced by the dataset cannot inject anything else.
func Render(reportText string) string {
	lines := strings.Split(reportText, "\n")
	rendered := make([]string, len(lines))

	for i, line := range lines {
		out := html.EscapeString(line)
		if IsVenueHeader(line) {
			out = "<strong>" + out + "</strong>"
		}
		// Bold wrap happens first; breaks surround whatever resulted.
		if IsSectionBreak(line) {
			out = "<br>" + out + "<br>"
		}
		rendered[i] = out
	}

	return strings.Join(rendered, "<br>")
}
