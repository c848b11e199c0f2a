package registry

import "time"

type RecordKind string

const (
	KindCode   RecordKind = "CODE"
	KindWorker RecordKind = "WORKER"
)

type CodeStatus string

const (
	StatusActive    CodeStatus = "ACTIVE"
	StatusValidated CodeStatus = "VALIDATED"
	StatusExpired   CodeStatus = "EXPIRED"

	// StatusRegistered marks worker rows; they never transition.
	StatusRegistered CodeStatus = "REGISTERED"
)

// Record is one row of a partition. CreatedAt is stored in UTC; Date, Time,
// Month and Year are display fields stamped in the registry's local timezone.
type Record struct {
	CreatedAt    time.Time
	Kind         RecordKind
	Code         string
	VisitorName  string
	ResidentName string
	HouseID      string
	Date         string
	Time         string
	Status       CodeStatus
	ServiceType  string
	PhotoURL     string
	Month        string
	Year         string
}

type RegisterInput struct {
	HouseID      string
	Condominio   string
	VisitorName  string
	ResidentName string
}

// RegisteredCode is the register response: the stored record plus the
// computed expiry instant (CreatedAt + TTL). ExpiresAt is derived, not stored.
type RegisteredCode struct {
	Record    Record
	ExpiresAt time.Time
}

type RegisterWorkerInput struct {
	HouseID     string
	Condominio  string
	WorkerName  string
	ServiceType string

	// Photo, when present, is uploaded to the photo store before the row is
	// written; PhotoURL may be set instead if the caller already uploaded it.
	Photo    []byte
	PhotoURL string
}

type ValidationStatus string

const (
	ValidationValidated ValidationStatus = "VALIDATED"
	ValidationDenied    ValidationStatus = "DENIED"
)

type DenialReason string

const (
	ReasonExpired  DenialReason = "EXPIRED"
	ReasonNotFound DenialReason = "NOT_FOUND"
)

type ValidationResult struct {
	Status      ValidationStatus
	Reason      DenialReason
	VisitorName string
	HouseID     string
}
