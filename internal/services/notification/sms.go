package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/vitalconnect/scheduler/internal/models"
)

var (
	ErrTwilioNotConfigured = errors.New("Twilio not configured")
	ErrInvalidPhoneNumber  = errors.New("invalid phone number")
	ErrSMSSendFailed       = errors.New("failed to send SMS")
	ErrSMSRateLimited      = errors.New("SMS rate limited")
	ErrTwilioCredentials   = errors.New("invalid Twilio credentials")
)

// SMSConfig holds the configuration for SMS sending via Twilio
type SMSConfig struct {
	AccountSID      string
	AuthToken       string
	FromPhoneNumber string
}

// SMSService handles sending SMS messages via Twilio
type SMSService struct {
	config *SMSConfig
	client *twilio.RestClient
}

// NewSMSService creates a new SMSService
func NewSMSService(config *SMSConfig) *SMSService {
	if config == nil {
		config = &SMSConfig{}
	}

	svc := &SMSService{
		config: config,
	}

	// Initialize Twilio client if configured
	if svc.IsConfigured() {
		svc.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: config.AccountSID,
			Password: config.AuthToken,
		})
	}

	return svc
}

// NewSMSServiceFromEnv creates a new SMSService from environment variables
func NewSMSServiceFromEnv() *SMSService {
	config := &SMSConfig{
		AccountSID:      os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:       os.Getenv("TWILIO_AUTH_TOKEN"),
		FromPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
	return NewSMSService(config)
}

// IsConfigured returns true if Twilio is properly configured
func (s *SMSService) IsConfigured() bool {
	return s.config != nil &&
		s.config.AccountSID != "" &&
		s.config.AuthToken != "" &&
		s.config.FromPhoneNumber != ""
}

// SendSMS sends an SMS message to the specified phone number
func (s *SMSService) SendSMS(ctx context.Context, to, message string) error {
	if !s.IsConfigured() {
		return ErrTwilioNotConfigured
	}

	if to == "" || !models.ValidateMobilePhone(to) {
		return ErrInvalidPhoneNumber
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.config.FromPhoneNumber)
	params.SetBody(message)

	_, err := s.client.Api.CreateMessage(params)
	if err != nil {
		// Check for specific Twilio errors
		errStr := err.Error()
		if strings.Contains(errStr, "21610") || strings.Contains(errStr, "21614") {
			return fmt.Errorf("%w: %v", ErrInvalidPhoneNumber, err)
		}
		if strings.Contains(errStr, "20003") || strings.Contains(errStr, "20001") {
			return fmt.Errorf("%w: %v", ErrTwilioCredentials, err)
		}
		if strings.Contains(errStr, "14107") || strings.Contains(errStr, "rate") {
			return fmt.Errorf("%w: %v", ErrSMSRateLimited, err)
		}
		return fmt.Errorf("%w: %v", ErrSMSSendFailed, err)
	}

	return nil
}

// ScheduleAlertKind distinguishes the kind of scheduling event an SMS reports on
type ScheduleAlertKind string

const (
	// AlertNormWarning reports that a doctor's generated schedule falls
	// short of their monthly contractual norm.
	AlertNormWarning ScheduleAlertKind = "norm_warning"

	// AlertUnderstaffed reports a day that could not be fully covered by the
	// assignment loop and was left with fewer doctors than required.
	AlertUnderstaffed ScheduleAlertKind = "understaffed"

	// AlertConflict reports a scheduling conflict found by the validator
	// (a rest-period violation or an understaffed day).
	AlertConflict ScheduleAlertKind = "conflict"
)

// ScheduleNotificationData contains the data needed to build an SMS for a
// generated monthly schedule.
type ScheduleNotificationData struct {
	Kind         ScheduleAlertKind
	TeamName     string
	Month        int
	Year         int
	DoctorName   string
	ScheduledHrs int
	NormHrs      int
	Day          int
	ScheduleID   uuid.UUID
	BaseURL      string
}

// BuildSMSMessage builds the SMS message for a schedule notification.
// Kept under 160 characters to avoid multi-part fragmentation.
func BuildSMSMessage(data *ScheduleNotificationData) string {
	link := fmt.Sprintf("/schedules/%s", data.ScheduleID.String())
	if data.BaseURL != "" {
		link = data.BaseURL + link
	}

	var base string
	switch data.Kind {
	case AlertNormWarning:
		base = fmt.Sprintf("[Scheduler] Norm warning %d/%d: %s scheduled %dh of %dh. Review: %s",
			data.Month, data.Year, data.DoctorName, data.ScheduledHrs, data.NormHrs, link)
	case AlertUnderstaffed:
		base = fmt.Sprintf("[Scheduler] Understaffed day %d (%s team) on %d/%d. Review: %s",
			data.Day, data.TeamName, data.Month, data.Year, link)
	case AlertConflict:
		base = fmt.Sprintf("[Scheduler] Conflict detected for %s on %d/%d. Review: %s",
			data.DoctorName, data.Month, data.Year, link)
	default:
		base = fmt.Sprintf("[Scheduler] Schedule %d/%d generated. Review: %s", data.Month, data.Year, link)
	}

	if len(base) > 160 {
		base = base[:157] + "..."
	}

	return base
}

// MaskPhoneForLog masks a phone number for logging (+5511988889999 -> +55*******9999)
func MaskPhoneForLog(phone string) string {
	return models.MaskMobilePhone(phone)
}
