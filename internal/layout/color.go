package layout

const CustomColor = "gray"

var palette = map[string]string{
	"Class":      "blue",
	"Study":      "green",
	"Study Time": "green",
	"Revision":   "indigo",
	"Break":      "gray",
	"Meal":       "amber",
	"Personal":   "purple",
	"Gym":        "pink",
	"Sleep":      "slate",
	"Task":       "yellow",
	"Lab":        "cyan",
	"Practical":  "cyan",
	"Meeting":    "rose",
	"Commute":    "stone",
	"Assignment": "orange",
	"Exam":       "red",
}

// ColorOf returns the palette name for an event type, CustomColor when the
// type has no entry of its own.
func ColorOf(eventType string) string {
	if c, ok := palette[eventType]; ok {
		return c
	}
	return CustomColor
}
