package report

import (
	"strings"
	"testing"
)

func TestIsVenueHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{
			name:     "report header",
			line:     "🏛️ Venue Optimization Report",
			expected: true,
		},
		{
			name:     "first place",
			line:     "🥇 Crowne Plaza Albany",
			expected: true,
		},
		{
			name:     "second place",
			line:     "🥈 Hilton Garden Inn",
			expected: true,
		},
		{
			name:     "third place",
			line:     "🥉 Marriott Courtyard",
			expected: true,
		},
		{
			name:     "honorable mention",
			line:     "🎖️ Holiday Inn Express",
			expected: true,
		},
		{
			name:     "plain detail line",
			line:     "💰 Avg. CPA: $61.20",
			expected: false,
		},
		{
			name:     "horizontal rule",
			line:     "---",
			expected: false,
		},
		{
			name:     "summary footer is not a venue header",
			line:     "**💬 Summary",
			expected: false,
		},
		{
			name:     "marker not at line start",
			line:     "winner: 🥇 Crowne Plaza",
			expected: false,
		},
		{
			name:     "empty line",
			line:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVenueHeader(tt.line); got != tt.expected {
				t.Errorf("IsVenueHeader(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestIsSectionBreak(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{
			name:     "first place",
			line:     "🥇 Crowne Plaza Albany",
			expected: true,
		},
		{
			name:     "honorable mention",
			line:     "🎖️ Holiday Inn Express",
			expected: true,
		},
		{
			name:     "horizontal rule",
			line:     "---",
			expected: true,
		},
		{
			name:     "summary footer",
			line:     "**💬 Based on 24 events",
			expected: true,
		},
		{
			name:     "report header does not break",
			line:     "🏛️ Venue Optimization Report",
			expected: false,
		},
		{
			name:     "plain detail line",
			line:     "🎯 Attendance Rate: 52.10%",
			expected: false,
		},
		{
			name:     "empty line",
			line:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSectionBreak(tt.line); got != tt.expected {
				t.Errorf("IsSectionBreak(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestRenderPlainLinesRoundTrip(t *testing.T) {
	// A report with no marker lines renders as the input with newlines
	// replaced by <br>, nothing bolded.
	input := "Line one\nLine two\nLine three"
	expected := "Line one<br>Line two<br>Line three"

	if got := Render(input); got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderEmptyReport(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty string", got)
	}
}

func TestRenderMedalLine(t *testing.T) {
	// Medal markers match both sets: bold wrap first, then breaks around.
	got := Render("🥇 Venue A")
	expected := "<br><strong>🥇 Venue A</strong><br>"

	if got != expected {
		t.Errorf("Render medal line = %q, want %q", got, expected)
	}
}

func TestRenderHorizontalRule(t *testing.T) {
	// The rule is break-surrounded but never bolded.
	got := Render("---")
	if strings.Contains(got, "<strong>") {
		t.Errorf("horizontal rule must not be bolded, got %q", got)
	}
	if got != "<br>---<br>" {
		t.Errorf("Render(\"---\") = %q, want %q", got, "<br>---<br>")
	}
}

func TestRenderMixedReport(t *testing.T) {
	input := "🥇 Venue A\nDetails here\n---\n**💬 Summary"
	got := Render(input)

	parts := []string{
		"<br><strong>🥇 Venue A</strong><br>", // bold and break-surrounded
		"Details here",                        // unchanged
		"<br>---<br>",                         // break-surrounded, not bold
		"<br>**💬 Summary<br>",                 // break-surrounded, not bold
	}
	expected := strings.Join(parts, "<br>")

	if got != expected {
		t.Errorf("Render(%q) =\n%q\nwant\n%q", input, got, expected)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	got := Render("🥇 Venue <script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("report text must be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag in %q", got)
	}
}

func TestRenderPreservesLineOrder(t *testing.T) {
	input := "first\n🥈 second\nthird"
	got := Render(input)

	iFirst := strings.Index(got, "first")
	iSecond := strings.Index(got, "second")
	iThird := strings.Index(got, "third")

	if iFirst < 0 || iSecond < 0 || iThird < 0 {
		t.Fatalf("missing lines in output %q", got)
	}
	if !(iFirst < iSecond && iSecond < iThird) {
		t.Errorf("line order not preserved in %q", got)
	}
}
