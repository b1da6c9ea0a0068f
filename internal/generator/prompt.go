package generator

import (
	"strings"
	"text/template"

	"github.com/kiruthikag2611/Planify/internal/timetable"
)

const systemPrompt = "You are an expert AI Timetable Generator for the Planify App. " +
	"Answer with a single JSON object that matches the provided schema."

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Your job is to create a perfect, optimized weekly timetable based on the user's role and their answers to a series of questions.

**User Information:**
Role: {{.Role}}
{{with .Student}}
Class/Year/Semester: {{.ClassInfo}}
Subjects: {{.Subjects}}
Hours per Subject per Week: {{.HoursPerSubject}}
Preferred Study Time: {{.StudyTime}}
Availability: {{.Availability}}
Break Preferences: {{.BreakPreferences}}
Priority Subjects: {{.PrioritySubjects}}
Upcoming Exams/Deadlines: {{.Deadlines}}
Additional Routines: {{.Routines}}
{{end}}{{with .Teacher}}
Subjects Taught: {{.Subjects}}
Weekly Classes per Subject: {{.WeeklyClasses}}
Class/Section Names: {{.ClassNames}}
Availability: {{.Availability}}
Preferred Teaching Hours: {{.TeachingHours}}
Restricted Hours: {{.RestrictedHours}}
Maximum Classes per Day: {{.MaxClassesPerDay}}
Minimum Gap Between Classes: {{.MinGap}}
Special Sessions (Labs, etc.): {{.SpecialSessions}}
{{end}}
**Timetable Generation Rules:**

**General (For Both Roles):**
- **No Overlapping:** Ensure no two events are scheduled at the same time.
- **Balanced Workload:** Distribute tasks and classes evenly throughout the week.
- **Avoid Burnout:** Do not schedule too many heavy or demanding sessions back-to-back.
- **Breaks:** Incorporate breaks every 1-2 hours. Use the user's break preferences.
- **Respect Preferences:** Strictly adhere to the user's specified availability, preferred times, and restricted hours.
- **Creative Filling:** Creatively and logically fill the entire week from Monday to Sunday, including routines like meals, sleep, and commute, based on the user's input. Generate at least 20-30 events for a full week schedule.
- **Event Types:** Use a variety of event types from the allowed list: {{join .Types ", "}}.
{{if eq .Role "Student"}}
**For Students:**
- **Prioritize Subjects:** Schedule high-priority or difficult subjects during the user's preferred high-focus study times.
- **Revision Blocks:** Include specific time slots for revision, especially for subjects with upcoming exams.
- **Lighter Weekends:** Keep weekends relatively light unless exams are near, focusing on revision or personal time.
{{else}}
**For Teachers:**
- **Limit Continuous Classes:** Avoid scheduling more than 2-3 classes consecutively without a break.
- **Even Distribution:** Distribute classes for various subjects and sections evenly across the week.
- **Long Slots:** Schedule special sessions like labs or practicals in longer, uninterrupted time blocks.
{{end}}
**Final Output:**
1. Generate a "schedule" array containing all the events for the week. Times are 24-hour "HH:MM".
2. Write a concise "summary" explaining why the generated timetable is optimized for the user, highlighting how you've used their preferences and balanced their workload.
`))

// RenderPrompt fills the generation prompt for req.
func RenderPrompt(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	err := promptTemplate.Execute(&sb, struct {
		Request
		Types []string
	}{Request: req, Types: timetable.CategoryNames()})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
