package report

import "strings"

// Report lines are classified by their leading characters only. The marker
// literals are a presentation contract shared with the report builder in
// internal/vor: changing them changes how every report renders.

// venueHeaderMarkers open lines that name an institution or ranked venue.
// These lines are emphasized in the rendered output.
var venueHeaderMarkers = []string{
	"🏛️", // report header / institution
	"🥇", // first place
	"🥈", // second place
	"🥉", // third place
	"🎖️", // honorable mention
}

// sectionBreakMarkers open lines that get visual separation from their
// neighbors: the ranked-venue markers, the horizontal rule between venue
// blocks, and the bolded summary footer.
var sectionBreakMarkers = []string{
	"🥇",
	"🥈",
	"🥉",
	"🎖️",
	"---",
	"**💬",
}

// IsVenueHeader reports whether the line starts with a venue-header marker.
func IsVenueHeader(line string) bool {
	return hasAnyPrefix(line, venueHeaderMarkers)
}

// IsSectionBreak reports whether the line starts with a section-break marker.
func IsSectionBreak(line string) bool {
	return hasAnyPrefix(line, sectionBreakMarkers)
}

func hasAnyPrefix(line string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
