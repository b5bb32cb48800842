package domain

import "time"

// Client is a person registered in the system.
type Client struct {
	ID               string            `json:"id" bson:"_id"`
	FirstName        string            `json:"first_name" bson:"first_name"`
	LastName         string            `json:"last_name" bson:"last_name"`
	DateOfBirth      string            `json:"date_of_birth" bson:"date_of_birth"`
	ContactInfo      map[string]string `json:"contact_info" bson:"contact_info"`
	MedicalHistory   string            `json:"medical_history" bson:"medical_history"`
	EnrolledPrograms []string          `json:"enrolled_programs" bson:"enrolled_programs"`
	RegisteredBy     string            `json:"registered_by" bson:"registered_by"`
	RegisteredAt     time.Time         `json:"registration_timestamp" bson:"registration_timestamp"`
}

// IsEnrolledIn reports whether programID is already in the client's enrollment list.
func (c *Client) IsEnrolledIn(programID string) bool {
	for _, id := range c.EnrolledPrograms {
		if id == programID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share the contact map or the
// enrollment slice with the registry that owns the original.
func (c *Client) Clone() *Client {
	clone := *c
	clone.ContactInfo = make(map[string]string, len(c.ContactInfo))
	for k, v := range c.ContactInfo {
		clone.ContactInfo[k] = v
	}
	clone.EnrolledPrograms = append(make([]string, 0, len(c.EnrolledPrograms)), c.EnrolledPrograms...)
	return &clone
}
