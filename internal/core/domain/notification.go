package domain

import "time"

// NotificationChannel identifies an outbound messaging integration.
type NotificationChannel string

const ChannelTelegram NotificationChannel = "TELEGRAM"

// NotificationStatus is the delivery outcome of a notification attempt.
type NotificationStatus string

const (
	NotificationSuccess NotificationStatus = "SUCCESS"
	NotificationFailed  NotificationStatus = "FAILED"
)

// NotificationLog records one delivery attempt to a partner.
type NotificationLog struct {
	LogID         string              `json:"logID"`
	PartnerID     string              `json:"partnerID"`
	TransactionID *string             `json:"transactionID,omitempty"`
	Channel       NotificationChannel `json:"channel"`
	Message       string              `json:"message"`
	Status        NotificationStatus  `json:"status"`
	Error         *string             `json:"error,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}
