package questionnaire

type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Description string   `json:"description,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Type        string   `json:"type"`
	Options     []Option `json:"options,omitempty"`
}

const (
	CategoryAcademics = "academics"
	RoleStudent       = "student"
	RoleTeacher       = "teacher"
)

var questionSets = map[string]map[string][]Question{
	CategoryAcademics: {
		RoleStudent: {
			{ID: "classInfo", Question: "What is your Class/Year/Semester?", Type: "text", Placeholder: "e.g., 2nd Year, Computer Science"},
			{ID: "subjects", Question: "List your subjects.", Type: "textarea", Placeholder: "e.g., Math, Physics, History"},
			{ID: "hoursPerSubject", Question: "How many hours do you want to study per subject, per week?", Type: "text", Placeholder: "e.g., Math: 5 hours, Physics: 4 hours"},
			{
				ID: "studyTime", Question: "When are you most focused?", Type: "radio",
				Options: []Option{
					{Value: "early-morning", Label: "Early Morning", Description: "The early bird catches the worm!"},
					{Value: "morning", Label: "Morning", Description: "Fresh and ready to go."},
					{Value: "afternoon", Label: "Afternoon", Description: "Power through the day."},
					{Value: "evening", Label: "Evening/Night", Description: "A quiet time for focus."},
				},
			},
			{ID: "availability", Question: "What are your fixed commitments?", Type: "textarea", Description: "List times you're busy (e.g., Classes on Mon 10-12, Part-time job Tue/Thu 5-8 PM)."},
			{ID: "breakPreferences", Question: "How do you like to take breaks?", Type: "text", Placeholder: "e.g., 15 mins every hour"},
			{ID: "prioritySubjects", Question: "Which subjects are your top priority?", Type: "textarea", Placeholder: "List subjects you find difficult or have exams for soon."},
			{ID: "deadlines", Question: "Any upcoming exams or assignment deadlines?", Type: "text", Placeholder: "e.g., Physics midterm next Friday"},
			{ID: "routines", Question: "Describe your other routines.", Type: "textarea", Description: "Tell us about your sleep schedule, meals, commute, gym, etc.", Placeholder: "e.g., Wake up at 7 AM, Gym Mon/Wed/Fri 6-7 PM"},
		},
		RoleTeacher: {
			{ID: "subjects", Question: "What subjects do you teach?", Type: "textarea", Placeholder: "e.g., Chemistry, Literature"},
			{ID: "weeklyClasses", Question: "How many weekly classes do you have for each subject?", Type: "text", Placeholder: "e.g., Chemistry: 4, Literature: 3"},
			{ID: "classNames", Question: "What are the Class/Section names?", Type: "text", Placeholder: "e.g., 10A, 10B, 11-Science"},
			{ID: "availability", Question: "What are your available days and time slots for teaching?", Type: "textarea", Placeholder: "e.g., Mon-Fri 9 AM to 5 PM, except Wed afternoon"},
			{ID: "teachingHours", Question: "What are your preferred teaching hours?", Type: "text", Placeholder: "e.g., Mornings are best"},
			{ID: "restrictedHours", Question: "Do you have any restricted hours?", Type: "text", Placeholder: "e.g., Staff meetings every Friday at 3 PM"},
			{ID: "maxClassesPerDay", Question: "What is the maximum number of classes you can take in a day?", Type: "number", Placeholder: "e.g., 4"},
			{ID: "minGap", Question: "What is the minimum gap you need between classes?", Type: "text", Placeholder: "e.g., 30 minutes"},
			{ID: "specialSessions", Question: "Any special sessions like labs or practicals?", Type: "text", Placeholder: "e.g., Chemistry Lab on Tuesdays, 2-4 PM"},
		},
	},
}
