package domain

// Program is a named health initiative clients can be enrolled in.
type Program struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	CreatedBy   string `json:"created_by" bson:"created_by"`
}
