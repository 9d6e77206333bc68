package dbmodels

type Rating struct {
	BaseModel
	IssueID  uint `gorm:"uniqueIndex"`
	TenantID uint
	Score    int
	Comment  string
}
