package xlsexport

import (
	"bytes"
	dbmodels "facility-desk-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportIssueList(list []dbmodels.Issue) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	issueSheet     = "Заявки"
	issueStatusCol = 7
	dateLayout     = "02.01.2006 15:04"
)

var issueColumns = []column{
	{title: "№", width: 8},
	{title: "Дата создания", width: 18},
	{title: "Заголовок", width: 40},
	{title: "Категория", width: 20},
	{title: "Местоположение", width: 30},
	{title: "Жилец", width: 28},
	{title: "Статус", width: 24},
	{title: "Подрядчик", width: 28},
	{title: "Дата изменения", width: 18},
}

func (i impl) ExportIssueList(list []dbmodels.Issue) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", issueSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа")
	}
	w := newSheetWriter(f, issueSheet, issueColumns)
	if err := w.header(); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	for _, item := range list {
		if err := w.line(issueRow(item), issueStatusCol, item.Status.Color()); err != nil {
			return nil, errors.Wrapf(err, "ошибка записи заявки %d в xlsx", item.ID)
		}
	}
	if len(list) != 0 {
		lastCol, err := excelize.ColumnNumberToName(len(issueColumns))
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования фильтра в xlsx")
		}
		if err = f.AutoFilter(issueSheet, "A1:"+lastCol+"1", nil); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования фильтра в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func issueRow(item dbmodels.Issue) []interface{} {
	tenant, contractor := "", ""
	if item.Tenant != nil {
		tenant = item.Tenant.GetFullName()
	}
	if item.CurrentAssignment != nil && item.CurrentAssignment.Contractor != nil {
		contractor = item.CurrentAssignment.Contractor.GetFullName()
	}
	return []interface{}{
		item.ID,
		item.CreatedAt.Format(dateLayout),
		item.Title,
		item.Category.ToHuman(),
		item.Location,
		tenant,
		item.Status.ToHuman(),
		contractor,
		item.UpdatedAt.Format(dateLayout),
	}
}
