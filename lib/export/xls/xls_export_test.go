package xlsexport

import (
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportIssueList(t *testing.T) {
	t.Run("реестр заявок", func(t *testing.T) {
		NewHandler()
		list := []dbmodels.Issue{
			{
				BaseModel: dbmodels.BaseModel{ID: 1, CreatedAt: time.Now(), UpdatedAt: time.Now()},
				Title:     "Протечка",
				Category:  models.CategoryWater,
				Location:  "Подъезд 2",
				Status:    models.IssueReceived,
				Tenant:    &dbmodels.User{FirstName: "Иван", LastName: "Жильцов"},
			},
		}
		buf, err := Instance.ExportIssueList(list)
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		header, err := f.GetCellValue("Заявки", "C1")
		require.NoError(t, err)
		require.Equal(t, "Заголовок", header)
		title, err := f.GetCellValue("Заявки", "C2")
		require.NoError(t, err)
		require.Equal(t, "Протечка", title)
		tenant, err := f.GetCellValue("Заявки", "F2")
		require.NoError(t, err)
		require.Equal(t, "Иван Жильцов", tenant)
		status, err := f.GetCellValue("Заявки", "G2")
		require.NoError(t, err)
		require.Equal(t, models.IssueReceived.ToHuman(), status)
	})
	t.Run("заливка статуса", func(t *testing.T) {
		NewHandler()
		list := []dbmodels.Issue{
			{BaseModel: dbmodels.BaseModel{ID: 1}, Title: "Лифт", Status: models.IssueCompleted},
			{BaseModel: dbmodels.BaseModel{ID: 2}, Title: "Кровля", Status: models.IssueCompleted},
			{BaseModel: dbmodels.BaseModel{ID: 3}, Title: "Фасад", Status: models.IssueReceived},
		}
		buf, err := Instance.ExportIssueList(list)
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		dataStyle, err := f.GetCellStyle("Заявки", "C2")
		require.NoError(t, err)
		completed1, err := f.GetCellStyle("Заявки", "G2")
		require.NoError(t, err)
		completed2, err := f.GetCellStyle("Заявки", "G3")
		require.NoError(t, err)
		received, err := f.GetCellStyle("Заявки", "G4")
		require.NoError(t, err)
		require.NotEqual(t, dataStyle, completed1)
		require.Equal(t, completed1, completed2)
		require.NotEqual(t, completed1, received)
		title, err := f.GetCellValue("Заявки", "C4")
		require.NoError(t, err)
		require.Equal(t, "Фасад", title)
	})
	t.Run("пустой реестр", func(t *testing.T) {
		NewHandler()
		buf, err := Instance.ExportIssueList(nil)
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
	})
}
