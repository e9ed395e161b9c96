package deck

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// Summary captures enough of a parsed deck to verify a round trip: the case
// label, which sections were present, and the counts and grid shapes the
// writer emitted.
type Summary struct {
	CaseID        string
	Sections      []string
	MaterialCount int
	PinCount      int
	ModuleDims    [][2]int // rows x cols per module, in deck order
	CoreDims      [2]int
	AxialPlanes   int
}

// HasSection reports whether the named section appeared in the deck.
func (s *Summary) HasSection(name string) bool {
	for _, sec := range s.Sections {
		if sec == name {
			return true
		}
	}
	return false
}

var (
	materialRe = regexp.MustCompile(`^mat\s+(\d+)\s+\S+\s+[-\d.eE+]+\s+[-\d.eE+]+$`)
	pinRe      = regexp.MustCompile(`^pin\s+(\d+)\s+(rect|gcyl)\b`)
	moduleRe   = regexp.MustCompile(`^module\s+\d+\s+(\d+)\s+x\s+(\d+)$`)
	coreRe     = regexp.MustCompile(`^core\s+(\d+)\s+x\s+(\d+)$`)
	axialRe    = regexp.MustCompile(`^axial((?:\s+[-\d.eE+]+)+)$`)
)

// Parse reads deck text into a summary. Unknown lines inside known sections
// are tolerated; a section left open at end of input is an error.
func Parse(text string) (*Summary, error) {
	summary := &Summary{}
	section := ""

	for lineNum, raw := range strings.Split(text, "\n") {
		line := stripComment(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "CASEID"):
			summary.CaseID = strings.TrimSpace(strings.TrimPrefix(line, "CASEID"))
			continue
		case line == "MATERIAL" || line == "GEOM" || line == "MESH":
			if section != "" {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"line %d: section %s opened inside %s", lineNum+1, line, section)
			}
			section = line
			summary.Sections = append(summary.Sections, line)
			continue
		case line == "END":
			if section == "" {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"line %d: END outside any section", lineNum+1)
			}
			section = ""
			continue
		}

		switch section {
		case "MATERIAL":
			if materialRe.MatchString(line) {
				summary.MaterialCount++
			}
		case "GEOM":
			if pinRe.MatchString(line) {
				summary.PinCount++
			} else if m := moduleRe.FindStringSubmatch(line); m != nil {
				rows, _ := strconv.Atoi(m[1])
				cols, _ := strconv.Atoi(m[2])
				summary.ModuleDims = append(summary.ModuleDims, [2]int{rows, cols})
			} else if m := coreRe.FindStringSubmatch(line); m != nil {
				rows, _ := strconv.Atoi(m[1])
				cols, _ := strconv.Atoi(m[2])
				summary.CoreDims = [2]int{rows, cols}
			}
		case "MESH":
			if m := axialRe.FindStringSubmatch(line); m != nil {
				summary.AxialPlanes = len(strings.Fields(m[1]))
			}
		}
	}

	if section != "" {
		return nil, errdefs.New(errdefs.CodeConfiguration, "section %s not closed", section)
	}
	return summary, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, commentPrefix); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
