package model

import "time"

type MessageThread struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Subject    string    `gorm:"column:subject;type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (MessageThread) TableName() string {
	return "message_threads"
}

type MessageThreadParticipant struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ThreadID uint64 `gorm:"column:thread_id;not null;index"`
	UserID   uint64 `gorm:"column:user_id;not null"`
}

func (MessageThreadParticipant) TableName() string {
	return "message_thread_participants"
}

type Message struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	ThreadID   uint64    `gorm:"column:thread_id;not null;index"`
	SenderID   uint64    `gorm:"column:sender_id;not null"`
	Body       string    `gorm:"column:body;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Message) TableName() string {
	return "messages"
}

type Notification struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Title      string    `gorm:"column:title;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}

type NotificationDismissal struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	NotificationID uint64    `gorm:"column:notification_id;not null;index"`
	UserID         uint64    `gorm:"column:user_id;not null"`
	DismissedAt    time.Time `gorm:"column:dismissed_at;not null"`
}

func (NotificationDismissal) TableName() string {
	return "notification_dismissals"
}

type EmailHistory struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Recipient  string    `gorm:"column:recipient;type:text;not null"`
	Subject    string    `gorm:"column:subject;type:text;not null"`
	SentAt     time.Time `gorm:"column:sent_at;not null"`
}

func (EmailHistory) TableName() string {
	return "email_history"
}
