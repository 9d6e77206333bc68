package dbmodels

// Note заметка управляющего, видна только управляющим и администраторам
type Note struct {
	AppendOnlyModel
	IssueID  uint  `gorm:"index"`
	AuthorID uint
	Author   *User `gorm:"foreignKey:AuthorID"`
	Body     string
}

// Comment комментарий жильца
type Comment struct {
	AppendOnlyModel
	IssueID  uint  `gorm:"index"`
	AuthorID uint
	Author   *User `gorm:"foreignKey:AuthorID"`
	Body     string
}
