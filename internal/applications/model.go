package applications

import "time"

// Status is the decision state of a rental application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Role is the party acting on an application.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
)

// Actor identifies who requests a status change.
type Actor struct {
	ID   string
	Role Role
}

// Profile is the personal and financial data captured for an applicant or
// guarantor.
type Profile struct {
	FullName      string `json:"fullName"`
	RUT           string `json:"rut"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	Employer      string `json:"employer,omitempty"`
	MonthlyIncome int64  `json:"monthlyIncome"`
	Address       string `json:"address,omitempty"`
	Commune       string `json:"commune,omitempty"`
	Region        string `json:"region,omitempty"`
}

// Snapshot freezes the applicant's profile at submission time. It is written
// once and never re-derived from the live profile.
type Snapshot struct {
	Applicant Profile  `json:"applicant"`
	Guarantor *Profile `json:"guarantor,omitempty"`
}

// Application is a rental application for a property.
type Application struct {
	ID          string
	PropertyID  string
	ApplicantID string
	GuarantorID string
	Status      Status
	Message     string
	Snapshot    Snapshot
	CreatedAt   time.Time
	DecidedAt   *time.Time
	DecidedBy   string
}
