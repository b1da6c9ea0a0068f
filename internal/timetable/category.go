package timetable

type Category string

const (
	CategoryClass     Category = "Class"
	CategoryStudy     Category = "Study"
	CategoryRevision  Category = "Revision"
	CategoryBreak     Category = "Break"
	CategoryMeal      Category = "Meal"
	CategoryCommute   Category = "Commute"
	CategoryGym       Category = "Gym"
	CategorySleep     Category = "Sleep"
	CategoryTask      Category = "Task"
	CategoryLab       Category = "Lab"
	CategoryPractical Category = "Practical"
	CategoryMeeting   Category = "Meeting"
	CategoryPersonal  Category = "Personal"

	// DefaultCategory is what CategoryOf returns for anything outside Categories.
	DefaultCategory = CategoryTask
)

var Categories = []Category{
	CategoryClass, CategoryStudy, CategoryRevision, CategoryBreak, CategoryMeal, CategoryCommute, CategoryGym,
	CategorySleep, CategoryTask, CategoryLab, CategoryPractical, CategoryMeeting, CategoryPersonal,
}

// CategoryOf maps a raw type tag to a known category. The match is exact
// (case-sensitive); every other value, including "", yields DefaultCategory.
func CategoryOf(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return DefaultCategory
}

func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, string(c))
	}
	return names
}
