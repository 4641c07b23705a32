package model

type TenantPlan string

const (
	PlanFree       TenantPlan = "free"
	PlanTeam       TenantPlan = "team"
	PlanEnterprise TenantPlan = "enterprise"
)

// Tenant 租户（组织/备考团队），所有业务数据按租户隔离
// swagger:model Tenant
type Tenant struct {
	UUIDBase
	Name      string     `gorm:"size:100;not null" json:"name"`
	Plan      TenantPlan `gorm:"type:enum('free','team','enterprise');default:'free'" json:"plan"`
	SeatLimit int        `gorm:"default:5" json:"seatLimit"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
}

func (Tenant) TableName() string {
	return "tenants"
}
