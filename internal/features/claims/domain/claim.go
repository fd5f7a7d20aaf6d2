package domain

import (
	"strconv"
	"strings"
)

// Status represents the lifecycle stage of a claim.
type Status string

const (
	// StatusQueued indicates the claim is waiting to be worked on.
	StatusQueued Status = "EN COLA"
	// StatusInProgress indicates the claim is being handled.
	StatusInProgress Status = "EN PROCESO"
	// StatusFinished indicates the claim has been resolved.
	StatusFinished Status = "FINALIZADO"
)

// AllStatuses lists the statuses in enumeration order.
var AllStatuses = []Status{StatusQueued, StatusInProgress, StatusFinished}

// ParseStatus maps a raw source cell onto the Status enumeration.
// The cell is uppercased before matching; unknown or absent values map to
// StatusQueued.
func ParseStatus(raw string) Status {
	switch s := Status(strings.ToUpper(raw)); s {
	case StatusQueued, StatusInProgress, StatusFinished:
		return s
	default:
		return StatusQueued
	}
}

// Label returns the display form of the status (e.g., "En Cola").
func (s Status) Label() string {
	switch s {
	case StatusQueued:
		return "En Cola"
	case StatusInProgress:
		return "En Proceso"
	case StatusFinished:
		return "Finalizado"
	default:
		return string(s)
	}
}

// Default field values substituted during normalization.
const (
	DefaultNA          = "N/A"
	DefaultDescription = "Sin descripción."
	DefaultReason      = "Sin motivo especificado"
)

// Claim represents one customer complaint record sourced from the claims
// registry spreadsheet.
type Claim struct {
	// ClaimNumber is the unique identifier and stable key of the record.
	ClaimNumber int `json:"claim_number"`
	// Status is the lifecycle stage of the claim.
	Status Status `json:"status"`
	// RecordedAt is the data-entry timestamp, not the claim date.
	RecordedAt string `json:"recorded_at"`
	// CustomerEmail is the reporter's email address.
	CustomerEmail string `json:"customer_email"`
	// ClaimDate is the date of the claim (YYYY-MM-DD). All date filtering
	// and timeline bucketing use this field.
	ClaimDate string `json:"claim_date"`
	// AccountNumber is the customer account reference.
	AccountNumber string `json:"account_number"`
	// Service names the affected service.
	Service string `json:"service"`
	// Company is the company the claim is against.
	Company string `json:"company"`
	// NeedsReplacement is true when the source marked the claim "SI"/"SÍ".
	NeedsReplacement bool `json:"needs_replacement"`
	// EstimatedDelivery is the expected delivery date, empty when absent.
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
	// ClaimOrigin records where the claim was filed (e.g., web, phone).
	ClaimOrigin string `json:"claim_origin"`
	// ProviderName is the supplier involved.
	ProviderName string `json:"provider_name"`
	// Warehouse is the deposit handling the claim.
	Warehouse string `json:"warehouse"`
	// Description is the free-form complaint text.
	Description string `json:"description"`
	// Reason is the categorized claim motive.
	Reason string `json:"reason"`
}

// searchValues returns the stringified form of every searchable field.
// Stringification is deterministic: the claim number in decimal,
// NeedsReplacement as "si"/"no", and an absent EstimatedDelivery as the
// empty string.
func (c Claim) searchValues() []string {
	replacement := "no"
	if c.NeedsReplacement {
		replacement = "si"
	}
	return []string{
		strconv.Itoa(c.ClaimNumber),
		string(c.Status),
		c.RecordedAt,
		c.CustomerEmail,
		c.ClaimDate,
		c.AccountNumber,
		c.Service,
		c.Company,
		replacement,
		c.EstimatedDelivery,
		c.ClaimOrigin,
		c.ProviderName,
		c.Warehouse,
		c.Description,
		c.Reason,
	}
}
