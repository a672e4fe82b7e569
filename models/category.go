package models

// Category classifies a reported issue. The set is closed.
type Category string

const (
	CategoryInfrastructure  Category = "Infrastructure"
	CategorySanitation      Category = "Sanitation"
	CategoryStreetLighting  Category = "Street Lighting"
	CategoryTrafficIssues   Category = "Traffic Issues"
	CategoryWasteManagement Category = "Waste Management"
	CategoryPublicSafety    Category = "Public Safety"
	CategoryOther           Category = "Other"
)

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return []Category{
		CategoryInfrastructure,
		CategorySanitation,
		CategoryStreetLighting,
		CategoryTrafficIssues,
		CategoryWasteManagement,
		CategoryPublicSafety,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
