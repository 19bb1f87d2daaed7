package domain

// Question categories. Each names one of the candidate's three degree maps.
const (
	CategoryType  = "type"
	CategoryColor = "color"
	CategoryOther = "other"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryType, CategoryColor, CategoryOther:
		return true
	}
	return false
}

// Question is a catalog question targeting one attribute of one category.
// Importance is a reserved tie-breaking weight; the canonical selection and
// guess logic do not consume it.
type Question struct {
	ID              string  `json:"id" yaml:"id"`
	Text            string  `json:"text" yaml:"text"`
	Category        string  `json:"category" yaml:"category"`
	TargetAttribute string  `json:"targetAttribute" yaml:"targetAttribute"`
	Importance      float64 `json:"importance,omitempty" yaml:"importance,omitempty"`
}
