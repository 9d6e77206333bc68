package models

import "strings"

type IssueCategory string

const (
	CategoryWater       IssueCategory = "Water"
	CategoryElectrical  IssueCategory = "Electrical"
	CategoryHeating     IssueCategory = "Heating"
	CategoryElevator    IssueCategory = "Elevator"
	CategoryCommonAreas IssueCategory = "Common-Areas"
	CategoryFacade      IssueCategory = "Facade"
	CategoryRoof        IssueCategory = "Roof"
	CategoryOther       IssueCategory = "Other"
)

var IssueCategories = []IssueCategory{
	CategoryWater,
	CategoryElectrical,
	CategoryHeating,
	CategoryElevator,
	CategoryCommonAreas,
	CategoryFacade,
	CategoryRoof,
	CategoryOther,
}

var categoryHumanName = map[IssueCategory]string{
	CategoryWater:       "Водоснабжение",
	CategoryElectrical:  "Электрика",
	CategoryHeating:     "Отопление",
	CategoryElevator:    "Лифт",
	CategoryCommonAreas: "Места общего пользования",
	CategoryFacade:      "Фасад",
	CategoryRoof:        "Кровля",
	CategoryOther:       "Прочее",
}

func (c IssueCategory) IsValid() bool {
	_, ok := categoryHumanName[c]
	return ok
}

func (c IssueCategory) ToHuman() string {
	if human, exist := categoryHumanName[c]; exist {
		return human
	}
	return string(c)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder по умолчанию хронологический порядок
func ParseSortOrder(value string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(value), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}
