package models

type IssueStatus string

const (
	IssueReceived             IssueStatus = "Received"
	IssueAssignedToContractor IssueStatus = "AssignedToContractor"
	IssueOnSite               IssueStatus = "OnSite"
	IssueRepairInProgress     IssueStatus = "RepairInProgress"
	IssueAwaitingParts        IssueStatus = "AwaitingParts"
	IssueCompleted            IssueStatus = "Completed"
	IssueCancelled            IssueStatus = "Cancelled"
	IssueRejected             IssueStatus = "Rejected"
)

// IssueStatuses порядок важен, используется в справочнике
var IssueStatuses = []IssueStatus{
	IssueReceived,
	IssueAssignedToContractor,
	IssueOnSite,
	IssueRepairInProgress,
	IssueAwaitingParts,
	IssueCompleted,
	IssueCancelled,
	IssueRejected,
}

type TransitionActor string

const (
	ActorManager    TransitionActor = "MANAGER"
	ActorContractor TransitionActor = "CONTRACTOR"
	ActorSystem     TransitionActor = "SYSTEM"
)

type Transition struct {
	From  IssueStatus
	To    IssueStatus
	Actor TransitionActor
	// переход выполняется только при создании назначения
	ViaAssignment bool
}

var transitionTable = map[IssueStatus][]Transition{
	IssueReceived: {
		{From: IssueReceived, To: IssueAssignedToContractor, Actor: ActorManager, ViaAssignment: true},
		{From: IssueReceived, To: IssueCancelled, Actor: ActorManager},
	},
	IssueAssignedToContractor: {
		{From: IssueAssignedToContractor, To: IssueOnSite, Actor: ActorContractor},
		{From: IssueAssignedToContractor, To: IssueRepairInProgress, Actor: ActorContractor},
		{From: IssueAssignedToContractor, To: IssueAwaitingParts, Actor: ActorContractor},
		{From: IssueAssignedToContractor, To: IssueRejected, Actor: ActorContractor},
	},
	IssueOnSite: {
		{From: IssueOnSite, To: IssueRepairInProgress, Actor: ActorContractor},
		{From: IssueOnSite, To: IssueAwaitingParts, Actor: ActorContractor},
		{From: IssueOnSite, To: IssueRejected, Actor: ActorContractor},
	},
	IssueRepairInProgress: {
		{From: IssueRepairInProgress, To: IssueAwaitingParts, Actor: ActorContractor},
		{From: IssueRepairInProgress, To: IssueCompleted, Actor: ActorContractor},
		{From: IssueRepairInProgress, To: IssueRejected, Actor: ActorContractor},
	},
	IssueAwaitingParts: {
		{From: IssueAwaitingParts, To: IssueRepairInProgress, Actor: ActorContractor},
		{From: IssueAwaitingParts, To: IssueRejected, Actor: ActorContractor},
	},
	IssueRejected: {
		{From: IssueRejected, To: IssueReceived, Actor: ActorSystem},
	},
}

var issueStatusHumanName = map[IssueStatus]string{
	IssueReceived:             "Получена",
	IssueAssignedToContractor: "Назначен подрядчик",
	IssueOnSite:               "Подрядчик на объекте",
	IssueRepairInProgress:     "Идет ремонт",
	IssueAwaitingParts:        "Ожидание запчастей",
	IssueCompleted:            "Выполнена",
	IssueCancelled:            "Отменена",
	IssueRejected:             "Отклонена подрядчиком",
}

var issueStatusColor = map[IssueStatus]string{
	IssueReceived:             "info",
	IssueAssignedToContractor: "primary",
	IssueOnSite:               "secondary",
	IssueRepairInProgress:     "warning",
	IssueAwaitingParts:        "warning",
	IssueCompleted:            "success",
	IssueCancelled:            "default",
	IssueRejected:             "error",
}

func (s IssueStatus) IsValid() bool {
	_, ok := issueStatusHumanName[s]
	return ok
}

func (s IssueStatus) IsTerminal() bool {
	return s.IsValid() && len(transitionTable[s]) == 0
}

func (s IssueStatus) ToHuman() string {
	if human, exist := issueStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s IssueStatus) Color() string {
	if color, exist := issueStatusColor[s]; exist {
		return color
	}
	return "default"
}

// FindTransition ищет ребро from -> to в таблице переходов
func FindTransition(from, to IssueStatus) (Transition, bool) {
	for _, tr := range transitionTable[from] {
		if tr.To == to {
			return tr, true
		}
	}
	return Transition{}, false
}

func (s IssueStatus) Transitions() []Transition {
	list := transitionTable[s]
	result := make([]Transition, len(list))
	copy(result, list)
	return result
}

// AssignmentStatus статус назначения, который соответствует статусу заявки
func (s IssueStatus) AssignmentStatus() (AssignmentStatus, bool) {
	switch s {
	case IssueAssignedToContractor:
		return AssignmentAssigned, true
	case IssueOnSite, IssueRepairInProgress:
		return AssignmentInProgress, true
	case IssueAwaitingParts:
		return AssignmentAwaitingParts, true
	case IssueCompleted:
		return AssignmentCompleted, true
	case IssueRejected:
		return AssignmentRejected, true
	}
	return "", false
}

type AssignmentStatus string

const (
	AssignmentAssigned      AssignmentStatus = "Assigned"
	AssignmentInProgress    AssignmentStatus = "InProgress"
	AssignmentAwaitingParts AssignmentStatus = "AwaitingParts"
	AssignmentCompleted     AssignmentStatus = "Completed"
	AssignmentRejected      AssignmentStatus = "Rejected"
)

var AssignmentStatuses = []AssignmentStatus{
	AssignmentAssigned,
	AssignmentInProgress,
	AssignmentAwaitingParts,
	AssignmentCompleted,
	AssignmentRejected,
}

var assignmentStatusHumanName = map[AssignmentStatus]string{
	AssignmentAssigned:      "Назначено",
	AssignmentInProgress:    "В работе",
	AssignmentAwaitingParts: "Ожидание запчастей",
	AssignmentCompleted:     "Выполнено",
	AssignmentRejected:      "Отклонено",
}

func (s AssignmentStatus) IsValid() bool {
	_, ok := assignmentStatusHumanName[s]
	return ok
}

func (s AssignmentStatus) IsActive() bool {
	return s != AssignmentCompleted && s != AssignmentRejected
}

func (s AssignmentStatus) ToHuman() string {
	if human, exist := assignmentStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}
