package models

// RequestStatus enumerates document-request lifecycle states owned by the
// backend. The client never transitions these locally.
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestReturned  RequestStatus = "Returned"
	RequestApproved  RequestStatus = "Approved"
	RequestForPrint  RequestStatus = "For Print"
	RequestForPickup RequestStatus = "For Pickup"
	RequestCompleted RequestStatus = "Completed"
	RequestRejected  RequestStatus = "Rejected"
	RequestCancelled RequestStatus = "Cancelled"
	RequestExpired   RequestStatus = "Expired"
	RequestReleased  RequestStatus = "Released"
)

// DocumentRequest mirrors the backend's document-request resource. Rows are
// cached only in transient page-level collections, never persisted locally.
type DocumentRequest struct {
	ID                 int64          `json:"id,omitempty"`
	DocumentType       string         `json:"documentType"`
	Purpose            string         `json:"purpose"`
	Copies             int            `json:"copies"`
	Requirements       string         `json:"requirements,omitempty"`
	AuthorizationPhoto string         `json:"authorizationPhoto,omitempty"`
	Contact            string         `json:"contact"`
	Notes              string         `json:"notes,omitempty"`
	Status             RequestStatus  `json:"status"`
	Action             string         `json:"action,omitempty"`
	CreatedAt          string         `json:"created_at,omitempty"`
	UpdatedAt          string         `json:"updated_at,omitempty"`
	PickupDate         string         `json:"pickup_date,omitempty"`
	PendingUpdates     map[string]any `json:"pending_updates,omitempty"`
}

// Notification mirrors the backend's notification resource.
type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at,omitempty"`
}
