package model

// Age buckets for the demographics family.
const (
	AgeGroupUnder18 = "<18"
	AgeGroup18To29  = "18-29"
	AgeGroup30To44  = "30-44"
	AgeGroup45To64  = "45-64"
	AgeGroup65Plus  = "65+"
)

// Demographics is the (age bucket, gender) aggregate.
type Demographics struct {
	AgeGroup       string  `bson:"age_group" json:"age_group"`
	Gender         string  `bson:"gender" json:"gender"`
	TotalCustomers int     `bson:"total_customers" json:"total_customers"`
	TotalSpent     float64 `bson:"total_spent" json:"total_spent"`
}

// AgeGroupFor buckets an age into the demographics age groups.
func AgeGroupFor(age int) string {
	switch {
	case age < 18:
		return AgeGroupUnder18
	case age < 30:
		return AgeGroup18To29
	case age < 45:
		return AgeGroup30To44
	case age < 65:
		return AgeGroup45To64
	default:
		return AgeGroup65Plus
	}
}
