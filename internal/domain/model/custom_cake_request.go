package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusReviewed   RequestStatus = "reviewed"
	RequestStatusQuoted     RequestStatus = "quoted"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// オーダーメイドケーキの見積もり依頼。カタログ/注文とは独立のワークフロー。
// quoted_priceは管理者が設定するまでnull。
type CustomCakeRequest struct {
	ID                int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName      string           `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail     string           `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone     string           `gorm:"type:varchar(50);not null" json:"customer_phone"`
	CakeDescription   string           `gorm:"type:text;not null" json:"cake_description"`
	Occasion          *string          `gorm:"type:varchar(255)" json:"occasion"`
	Size              *string          `gorm:"type:varchar(100)" json:"size"`
	FlavorPreferences *string          `gorm:"type:text" json:"flavor_preferences"`
	DesignPreferences *string          `gorm:"type:text" json:"design_preferences"`
	BudgetRange       *string          `gorm:"type:varchar(100)" json:"budget_range"`
	RequiredDate      *time.Time       `json:"required_date"`
	Status            RequestStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminNotes        *string          `gorm:"type:text" json:"admin_notes"`
	QuotedPrice       *decimal.Decimal `gorm:"type:numeric(10,2)" json:"quoted_price"`
	CreatedAt         time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
