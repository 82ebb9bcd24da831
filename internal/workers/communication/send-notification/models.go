// internal/workers/communication/send-notification/models.go
package sendnotification

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "employer" or "seeker"
	NotificationType string                 `json:"notificationType"`
	ApplicationID    string                 `json:"applicationId,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeNewApplication       = "new_application"
	TypeInterviewProposed    = "interview_proposed"
	TypeInterviewResponded   = "interview_responded"
	TypeAcceptanceGuideSent  = "acceptance_guide_sent"
	TypeApplicationRejected  = "application_rejected"
	TypeFirstWorkDateUpdated = "first_work_date_updated"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeEmployer = "employer"
	RecipientTypeSeeker   = "seeker"
)
