package models

import (
	"database/sql"
	"time"
)

// NotificationLog is the row shape of the notification_logs table.
type NotificationLog struct {
	LogID         string         `db:"log_id"`
	PartnerID     string         `db:"partner_id"`
	TransactionID sql.NullString `db:"transaction_id"`
	Channel       string         `db:"channel"`
	Message       string         `db:"message"`
	Status        string         `db:"status"`
	Error         sql.NullString `db:"error"`
	CreatedAt     time.Time      `db:"created_at"`
}
