package rbac

import (
	"facility-desk-backend/models"
)

// грубая фильтрация по маршрутам, точная проверка выполняется в обработчиках
func (i *impl) initRules() {
	i.issues()
	i.assignments()
	i.roleRequests()
	i.users()
}

func (i *impl) mustRegister(capability models.Capability, swaggerPattern string) {
	if err := i.RegisterRule(capability, swaggerPattern, nil); err != nil {
		panic(err.Error())
	}
}

func (i *impl) issues() {
	i.mustRegister(models.CapIssueCreate, "/api/v1/issues [post]")
	i.mustRegister(models.CapIssueExport, "/api/v1/issues/export [post]")
	i.mustRegister(models.CapIssueCancel, "/api/v1/issues/{id}/cancel [put]")
	i.mustRegister(models.CapAssignContractor, "/api/v1/issues/{id}/assign [post]")
	i.mustRegister(models.CapNoteWrite, "/api/v1/issues/{id}/notes [post]")
	i.mustRegister(models.CapNoteRead, "/api/v1/issues/{id}/notes [get]")
	i.mustRegister(models.CapCommentWrite, "/api/v1/issues/{id}/comments [post]")
	i.mustRegister(models.CapRatingSubmit, "/api/v1/issues/{id}/rating [post]")
	i.mustRegister(models.CapFileUpload, "/api/v1/files/{kind} [post]")
}

func (i *impl) assignments() {
	i.mustRegister(models.CapAssignmentWork, "/api/v1/assignments/mine [get]")
	i.mustRegister(models.CapAssignmentWork, "/api/v1/assignments/{id}/status [put]")
	i.mustRegister(models.CapAssignmentWork, "/api/v1/assignments/{id}/reject [put]")
	i.mustRegister(models.CapAssignmentWork, "/api/v1/assignments/{id}/actual_cost [put]")
	i.mustRegister(models.CapAssignmentWork, "/api/v1/assignments/{id}/estimate [put]")
	i.mustRegister(models.CapAssignmentWork, "/api/v1/assignments/{id}/warranty [put]")
}

func (i *impl) roleRequests() {
	i.mustRegister(models.CapRoleRequestSubmit, "/api/v1/role_requests [post]")
	i.mustRegister(models.CapRoleRequestResolve, "/api/v1/role_requests/{id}/resolve [put]")
}

func (i *impl) users() {
	i.mustRegister(models.CapUserManage, "/api/v1/users [post]")
	i.mustRegister(models.CapUserDirectory, "/api/v1/users/list [post]")
	i.mustRegister(models.CapContractorAvailability, "/api/v1/users/{id}/availability [put]")
}
