package models

type RbacFunc func(userID uint, role UserRole, path string) bool

type Capability string

const (
	CapIssueCreate            Capability = "ISSUE_CREATE"
	CapIssueViewAll           Capability = "ISSUE_VIEW_ALL"
	CapIssueExport            Capability = "ISSUE_EXPORT"
	CapIssueCancel            Capability = "ISSUE_CANCEL"
	CapAssignContractor       Capability = "ASSIGN_CONTRACTOR"
	CapAssignmentWork         Capability = "ASSIGNMENT_WORK"
	CapNoteWrite              Capability = "NOTE_WRITE"
	CapNoteRead               Capability = "NOTE_READ"
	CapCommentWrite           Capability = "COMMENT_WRITE"
	CapCommentReadAll         Capability = "COMMENT_READ_ALL"
	CapRatingSubmit           Capability = "RATING_SUBMIT"
	CapRoleRequestSubmit      Capability = "ROLE_REQUEST_SUBMIT"
	CapRoleRequestResolve     Capability = "ROLE_REQUEST_RESOLVE"
	CapUserManage             Capability = "USER_MANAGE"
	CapUserDirectory          Capability = "USER_DIRECTORY"
	CapContractorAvailability Capability = "CONTRACTOR_AVAILABILITY"
	CapFileUpload             Capability = "FILE_UPLOAD"
)

// capabilityMatrix единственный источник прав по ролям
var capabilityMatrix = map[Capability][]UserRole{
	CapIssueCreate:            {TenantRole},
	CapIssueViewAll:           {ManagerRole, AdminRole},
	CapIssueExport:            {ManagerRole, AdminRole},
	CapIssueCancel:            {ManagerRole},
	CapAssignContractor:       {ManagerRole},
	CapAssignmentWork:         {ContractorRole},
	CapNoteWrite:              {ManagerRole},
	CapNoteRead:               {ManagerRole, AdminRole},
	CapCommentWrite:           {TenantRole},
	CapCommentReadAll:         {ManagerRole},
	CapRatingSubmit:           {TenantRole},
	CapRoleRequestSubmit:      {TenantRole, ContractorRole},
	CapRoleRequestResolve:     {AdminRole},
	CapUserManage:             {AdminRole},
	CapUserDirectory:          {ManagerRole, AdminRole},
	CapContractorAvailability: {ContractorRole, AdminRole},
	CapFileUpload:             {TenantRole, ContractorRole, ManagerRole},
}

func RolesFor(c Capability) []UserRole {
	roles := capabilityMatrix[c]
	result := make([]UserRole, len(roles))
	copy(result, roles)
	return result
}

func Capabilities() []Capability {
	result := make([]Capability, 0, len(capabilityMatrix))
	for c := range capabilityMatrix {
		result = append(result, c)
	}
	return result
}
