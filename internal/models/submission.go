package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionType distinguishes course enrollments from plain contact messages
type SubmissionType string

const (
	SubmissionTypeEnrollment SubmissionType = "enrollment"
	SubmissionTypeContact    SubmissionType = "contact"
)

// IsValid reports whether the type is one of the known submission kinds
func (t SubmissionType) IsValid() bool {
	return t == SubmissionTypeEnrollment || t == SubmissionTypeContact
}

// Submission is a persisted enrollment or contact-form record. Submissions
// are append-only: once created they are never mutated.
type Submission struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Course     string         `json:"course,omitempty"`
	Experience string         `json:"experience,omitempty"`
	Message    string         `json:"message,omitempty"`
	Subtitle   string         `json:"subtitle,omitempty"`
	Type       SubmissionType `json:"type"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// SubmitSubmissionRequest is the public enrollment/contact form payload.
// Name, email and phone are the only hard-required fields; course is
// additionally required for enrollments (checked in the service so the
// error message can name the field).
type SubmitSubmissionRequest struct {
	Name       string         `json:"name" binding:"required"`
	Email      string         `json:"email" binding:"required"`
	Phone      string         `json:"phone" binding:"required"`
	Course     string         `json:"course"`
	Experience string         `json:"experience"`
	Message    string         `json:"message"`
	Subtitle   string         `json:"subtitle"`
	Type       SubmissionType `json:"type" binding:"omitempty,oneof=enrollment contact"`
}
