package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// NotificationService sends booking confirmations by SMS through Textbelt.
// Without an API key it only logs.
type NotificationService struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewNotificationService(apiKey string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		apiKey:   apiKey,
		endpoint: textbeltURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// SendBookingConfirmationSMS sends in the background so the API response is
// not held up by the SMS provider.
func (s *NotificationService) SendBookingConfirmationSMS(b models.Booking) {
	if b.Phone == "" {
		s.logger.Debug("SMS not sent: booking has no phone number", zap.String("booking_id", b.ID.Hex()))
		return
	}
	if s.apiKey == "" {
		s.logger.Debug("SMS not sent: TEXTBELT_API_KEY is not set", zap.String("booking_id", b.ID.Hex()))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.sendSMS(ctx, b.Phone, confirmationMessage(b)); err != nil {
			s.logger.Warn("failed to send booking SMS",
				zap.String("booking_id", b.ID.Hex()),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("booking SMS sent", zap.String("booking_id", b.ID.Hex()))
	}()
}

func confirmationMessage(b models.Booking) string {
	name := b.PatientName
	if name == "" {
		name = b.Patient
	}
	return fmt.Sprintf("Appointment Confirmed: %s for %s on %s at %s.", b.Treatment, name, b.Date, b.Slot)
}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *NotificationService) sendSMS(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return fmt.Errorf("encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode sms response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}
