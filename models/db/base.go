package dbmodels

import (
	"time"
)

// BaseModel изменяемые записи (пользователи, заявки, назначения)
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppendOnlyModel записи, которые только добавляются: история, заметки, уведомления.
// Порядок добавления определяется ID
type AppendOnlyModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
