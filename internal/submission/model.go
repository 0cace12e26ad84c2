package submission

import "time"

// Status tracks where an application sits in review. New submissions always
// start pending; only an administrator moves them.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusUnderReview Status = "under-review"
)

// ValidStatus reports whether s is one of the review states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusUnderReview:
		return true
	default:
		return false
	}
}

// PersonalInfo is the applicant-identity section of the form.
type PersonalInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
}

// EmploymentInfo is the employment section of the form.
type EmploymentInfo struct {
	EmploymentStatus   string `json:"employmentStatus"`
	Employer           string `json:"employer"`
	JobTitle           string `json:"jobTitle"`
	MonthlyIncome      string `json:"monthlyIncome"`
	EmploymentDuration string `json:"employmentDuration"`
}

// FinancialInfo is the financial-situation section of the form.
type FinancialInfo struct {
	MonthlyExpenses string `json:"monthlyExpenses"`
	ExistingLoans   string `json:"existingLoans"`
}

// LoanRequest is the requested-loan section of the form.
type LoanRequest struct {
	LoanAmount     string `json:"loanAmount"`
	LoanDuration   string `json:"loanDuration"`
	LoanPurpose    string `json:"loanPurpose"`
	AdditionalInfo string `json:"additionalInfo"`
}

// Payload is the client-supplied part of a submission. It deliberately has
// no id, status or owner fields: those are stamped server-side from the
// authenticated caller, never read from the request body.
type Payload struct {
	PersonalInfo   PersonalInfo   `json:"personalInfo"`
	EmploymentInfo EmploymentInfo `json:"employmentInfo"`
	FinancialInfo  FinancialInfo  `json:"financialInfo"`
	LoanRequest    LoanRequest    `json:"loanRequest"`
	UploadedFiles  []string       `json:"uploadedFiles"`
}

// Submission is a persisted loan application. OwnerUserID and OwnerEmail are
// a snapshot of the creating user, not a live reference, so historical
// records stay meaningful even if the account changes later.
type Submission struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      Status    `json:"status"`
	OwnerUserID string    `json:"ownerUserId"`
	OwnerEmail  string    `json:"ownerEmail"`
	Payload
}
