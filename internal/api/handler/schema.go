package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// --- Programs ---

type createProgramRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

type createProgramResponse struct {
	Message   string `json:"message"`
	ProgramID string `json:"program_id"`
}

type programResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

// --- Clients ---

type registerClientRequest struct {
	FirstName      string            `json:"first_name"      validate:"required"`
	LastName       string            `json:"last_name"       validate:"required"`
	DateOfBirth    string            `json:"date_of_birth"   validate:"required"`
	ContactInfo    map[string]string `json:"contact_info"`
	MedicalHistory string            `json:"medical_history"`
}

type registerClientResponse struct {
	Message  string `json:"message"`
	ClientID string `json:"client_id"`
}

type enrollRequest struct {
	ProgramIDs []string `json:"program_ids"`
}

type clientResponse struct {
	ID                    string            `json:"id"`
	FirstName             string            `json:"first_name"`
	LastName              string            `json:"last_name"`
	DateOfBirth           string            `json:"date_of_birth"`
	ContactInfo           map[string]string `json:"contact_info"`
	MedicalHistory        string            `json:"medical_history"`
	EnrolledPrograms      []string          `json:"enrolled_programs"`
	RegisteredBy          string            `json:"registered_by"`
	RegistrationTimestamp time.Time         `json:"registration_timestamp"`
}

// clientSummaryResponse is the lightweight item used in search results.
type clientSummaryResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

type enrollResponse struct {
	Message string         `json:"message"`
	Client  clientResponse `json:"client"`
}
