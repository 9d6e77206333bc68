package issueapimodels

import (
	dbmodels "facility-desk-backend/models/db"
	"time"
)

type NoteData struct {
	Body string `json:"body"`
}

type NoteView struct {
	ID         uint      `json:"id"`
	IssueID    uint      `json:"issue_id"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func NoteConvert(rec dbmodels.Note) NoteView {
	result := NoteView{
		ID:        rec.ID,
		IssueID:   rec.IssueID,
		AuthorID:  rec.AuthorID,
		Body:      rec.Body,
		CreatedAt: rec.CreatedAt,
	}
	if rec.Author != nil {
		result.AuthorName = rec.Author.GetFullName()
	}
	return result
}

func CommentConvert(rec dbmodels.Comment) NoteView {
	result := NoteView{
		ID:        rec.ID,
		IssueID:   rec.IssueID,
		AuthorID:  rec.AuthorID,
		Body:      rec.Body,
		CreatedAt: rec.CreatedAt,
	}
	if rec.Author != nil {
		result.AuthorName = rec.Author.GetFullName()
	}
	return result
}

type RatingData struct {
	Score   int    `json:"score"` // 1..5
	Comment string `json:"comment"`
}

type RatingView struct {
	IssueID   uint      `json:"issue_id"`
	TenantID  uint      `json:"tenant_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func RatingConvert(rec dbmodels.Rating) RatingView {
	return RatingView{
		IssueID:   rec.IssueID,
		TenantID:  rec.TenantID,
		Score:     rec.Score,
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
	}
}
