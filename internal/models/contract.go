package models

import "time"

type Contract struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	StudioID uint   `gorm:"index" json:"studio_id"`
	Code     string `gorm:"size:20;index" json:"code"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	PackageID uint        `gorm:"index" json:"package_id"`
	Package   CatalogItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"package"`

	Status string `gorm:"size:30;default:'waiting_schedule';index" json:"status"`

	WeddingDate  *time.Time `json:"wedding_date"`
	ShootDate    *time.Time `json:"shoot_date"`
	HandoverDate *time.Time `json:"handover_date"`
	Location     string     `gorm:"size:255" json:"location"`

	PackagePrice int64 `json:"package_price"`
	Discount     int64 `json:"discount"`
	TotalAmount  int64 `json:"total_amount"`
	PaidAmount   int64 `json:"paid_amount"`

	CancelReason string `gorm:"size:255" json:"cancel_reason"`

	ScheduledAt *time.Time `json:"scheduled_at"`
	RetouchAt   *time.Time `json:"retouch_at"`
	HandoverAt  *time.Time `json:"handover_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	SearchKey string `gorm:"size:400;index" json:"-"`

	NoteHistory        []ContractNote    `gorm:"constraint:OnDelete:CASCADE;" json:"note_history,omitempty"`
	AdditionalServices []ContractService `gorm:"constraint:OnDelete:CASCADE;" json:"additional_services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Outstanding is what the customer still owes.
func (c *Contract) Outstanding() int64 {
	if c.TotalAmount <= c.PaidAmount {
		return 0
	}
	return c.TotalAmount - c.PaidAmount
}

type ContractNote struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ContractID uint   `gorm:"index" json:"contract_id"`
	Author     string `gorm:"size:100" json:"author"`
	FromStatus string `gorm:"size:30" json:"from_status,omitempty"`
	ToStatus   string `gorm:"size:30" json:"to_status,omitempty"`
	Content    string `gorm:"type:text" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}

// ContractService snapshots name and price of an extra catalog item.
type ContractService struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ContractID uint   `gorm:"index" json:"contract_id"`
	ServiceID  uint   `gorm:"index" json:"service_id"`
	Name       string `gorm:"size:100" json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `gorm:"default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
}

func (s ContractService) LineTotal() int64 {
	q := s.Quantity
	if q <= 0 {
		q = 1
	}
	return s.UnitPrice * int64(q)
}
