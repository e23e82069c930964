package funnel

var (
	roles = []string{
		"Owner/CEO",
		"Marketing Manager",
		"Sales Director",
		"Product Development",
		"Other",
	}
	interests = []string{
		"Grow Sales",
		"Improve Customer Loyalty",
		"Gain Market Insights",
		"Increase Operational Efficiency",
		"Just Exploring AI",
	}
)

// Roles returns the enumerated set of selectable user roles.
func Roles() []string {
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// Interests returns the enumerated set of selectable primary interests.
func Interests() []string {
	out := make([]string, len(interests))
	copy(out, interests)
	return out
}

func validRole(role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func validInterest(interest string) bool {
	for _, i := range interests {
		if i == interest {
			return true
		}
	}
	return false
}
