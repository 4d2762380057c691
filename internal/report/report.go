// Package report renders the roster and per-course summaries from a
// snapshot of the store. It never touches storage itself.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aanand-mishra/trackstudent/internal/types"
)

// EmptyRoster is returned by both reports when there are no students.
const EmptyRoster = "No students registered."

const dateLayout = "02/01/2006 15:04"

// CourseCount is one line of the course summary.
type CourseCount struct {
	Course string
	Count  int
}

// Generator builds report text. The clock stamps the report date.
type Generator struct {
	now func() time.Time
}

// New returns a Generator. A nil now means time.Now.
func New(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Roster lists every student in the given order.
func (g *Generator) Roster(students []types.Student) string {
	if len(students) == 0 {
		return EmptyRoster
	}

	lines := []string{
		"=== STUDENT REPORT ===",
		fmt.Sprintf("Total students: %d", len(students)),
		fmt.Sprintf("Report date: %s", g.now().Format(dateLayout)),
		"",
	}
	for i, s := range students {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, s))
	}
	return strings.Join(lines, "\n")
}

// Courses counts students per course, sorted by course name.
func Courses(students []types.Student) []CourseCount {
	counts := make(map[string]int)
	for _, s := range students {
		counts[s.Course]++
	}

	out := make([]CourseCount, 0, len(counts))
	for course, n := range counts {
		out = append(out, CourseCount{Course: course, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Course < out[j].Course })
	return out
}

// CourseReport renders Courses as text.
func (g *Generator) CourseReport(students []types.Student) string {
	if len(students) == 0 {
		return EmptyRoster
	}

	lines := []string{
		"=== REPORT BY COURSE ===",
		fmt.Sprintf("Report date: %s", g.now().Format(dateLayout)),
		"",
	}
	for _, c := range Courses(students) {
		lines = append(lines, fmt.Sprintf("Course: %s - %d student(s)", c.Course, c.Count))
	}
	return strings.Join(lines, "\n")
}
