package models

import "fmt"

type NotificationCode string

type NotificationTpl struct {
	Name  string
	Title string
	Msg   string
}

const (
	NotifyIssueStatusChanged  NotificationCode = "IssueStatusChanged"
	NotifyAssignmentCreated   NotificationCode = "AssignmentCreated"
	NotifyIssueNoteAdded      NotificationCode = "IssueNoteAdded"
	NotifyAssignmentRejected  NotificationCode = "AssignmentRejected"
	NotifyWorkCompleted       NotificationCode = "WorkCompleted"
	NotifyRoleRequestResolved NotificationCode = "RoleRequestResolved"
)

var NotificationCodeMap = map[NotificationCode]NotificationTpl{
	NotifyIssueStatusChanged:  {Name: "Изменение статуса заявки", Title: "Статус заявки изменён", Msg: "Заявка «%v»: статус изменён с «%v» на «%v». Изменил: %v."},
	NotifyAssignmentCreated:   {Name: "Назначение на заявку", Title: "Новое назначение", Msg: "Вам назначена заявка «%v» (%v, %v). Назначил: %v."},
	NotifyIssueNoteAdded:      {Name: "Заметка управляющего", Title: "Новая заметка по заявке", Msg: "По заявке «%v» добавлена заметка: %v"},
	NotifyAssignmentRejected:  {Name: "Отказ подрядчика", Title: "Подрядчик отказался от заявки", Msg: "Подрядчик %v отказался от заявки «%v». Причина: %v"},
	NotifyWorkCompleted:       {Name: "Работы выполнены", Title: "Работы по заявке выполнены", Msg: "Подрядчик %v завершил работы по заявке «%v»."},
	NotifyRoleRequestResolved: {Name: "Решение по заявке на роль", Title: "Заявка на роль рассмотрена", Msg: "Ваша заявка на роль «%v» рассмотрена: %v. %v"},
}

// NotificationData производное событие, получатель определяется вызывающей стороной
type NotificationData struct {
	Code      NotificationCode
	Title     string
	Msg       string
	OldStatus IssueStatus
	NewStatus IssueStatus
	ActorName string
}

func GetIssueStatusChanged(issueTitle string, oldStatus, newStatus IssueStatus, actorName string) NotificationData {
	code := NotifyIssueStatusChanged
	return NotificationData{
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, issueTitle, oldStatus.ToHuman(), newStatus.ToHuman(), actorName),
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorName: actorName,
	}
}

func GetAssignmentCreated(issueTitle string, category IssueCategory, location, managerName string) NotificationData {
	code := NotifyAssignmentCreated
	return NotificationData{
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, issueTitle, category.ToHuman(), location, managerName),
		ActorName: managerName,
	}
}

func GetIssueNoteAdded(issueTitle, noteText, managerName string) NotificationData {
	code := NotifyIssueNoteAdded
	return NotificationData{
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, issueTitle, noteText),
		ActorName: managerName,
	}
}

func GetAssignmentRejected(issueTitle, contractorName, reason string) NotificationData {
	code := NotifyAssignmentRejected
	return NotificationData{
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, contractorName, issueTitle, reason),
		OldStatus: IssueRejected,
		NewStatus: IssueReceived,
		ActorName: contractorName,
	}
}

func GetWorkCompleted(issueTitle, contractorName string) NotificationData {
	code := NotifyWorkCompleted
	return NotificationData{
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, contractorName, issueTitle),
		NewStatus: IssueCompleted,
		ActorName: contractorName,
	}
}

func GetRoleRequestResolved(requestedRole UserRole, decision RoleRequestStatus, adminNotes, adminName string) NotificationData {
	code := NotifyRoleRequestResolved
	return NotificationData{
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, requestedRole.ToHuman(), decision.ToHuman(), adminNotes),
		ActorName: adminName,
	}
}
