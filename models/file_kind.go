package models

type FileKind string

const (
	FileKindIssueImage FileKind = "issue_image"
	FileKindWarranty   FileKind = "warranty"
	FileKindCV         FileKind = "cv"
)

var fileKindRoles = map[FileKind][]UserRole{
	FileKindIssueImage: {TenantRole, ManagerRole},
	FileKindWarranty:   {ContractorRole, ManagerRole},
	FileKindCV:         {TenantRole, ContractorRole},
}

func (k FileKind) IsValid() bool {
	_, ok := fileKindRoles[k]
	return ok
}

// AllowedFor может ли роль загружать файлы этого вида
func (k FileKind) AllowedFor(role UserRole) bool {
	for _, r := range fileKindRoles[k] {
		if r == role {
			return true
		}
	}
	return false
}
