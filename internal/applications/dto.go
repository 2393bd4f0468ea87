package applications

import "time"

// ApplicationResponse is the outward-facing representation of an application.
type ApplicationResponse struct {
	ID          string     `json:"id"`
	PropertyID  string     `json:"propertyId"`
	ApplicantID string     `json:"applicantId"`
	GuarantorID string     `json:"guarantorId,omitempty"`
	Status      Status     `json:"status"`
	Message     string     `json:"message,omitempty"`
	Snapshot    Snapshot   `json:"snapshot"`
	CreatedAt   time.Time  `json:"createdAt"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	DecidedBy   string     `json:"decidedBy,omitempty"`
}

func toResponse(app Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		PropertyID:  app.PropertyID,
		ApplicantID: app.ApplicantID,
		GuarantorID: app.GuarantorID,
		Status:      app.Status,
		Message:     app.Message,
		Snapshot:    app.Snapshot,
		CreatedAt:   app.CreatedAt,
		DecidedAt:   app.DecidedAt,
		DecidedBy:   app.DecidedBy,
	}
}

type submitRequest struct {
	PropertyID  string   `json:"propertyId"`
	GuarantorID string   `json:"guarantorId"`
	Message     string   `json:"message"`
	Snapshot    Snapshot `json:"snapshot"`
}

type statusRequest struct {
	Status Status `json:"status"`
}
