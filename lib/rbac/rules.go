package rbac

import (
	"smarthire-backend/models"
)

var (
	AdminHrRoleSet    = []models.UserRole{models.AdminRole, models.HRRole}
	AdminHrHodRoleSet = []models.UserRole{models.AdminRole, models.HRRole, models.HODRole}
	FlowRoleSet       = []models.UserRole{models.AdminRole, models.SchedulerRole, models.HODRole, models.SurveillanceRole}
	EvidenceRoleSet   = []models.UserRole{models.AdminRole, models.HODRole, models.SurveillanceRole}
	OperatorRoles     = []models.UserRole{models.AdminRole, models.HRRole, models.HODRole, models.SchedulerRole, models.SurveillanceRole}
	CandidateRoleSet  = []models.UserRole{models.CandidateRole}
)

const candidateTestPattern = "/api/v1/space/candidate/{id}/test [put]"

func (i *impl) initRules() {
	i.candidate()
	i.lifecycle()
	i.evidence()
	i.report()
	i.selfService()
}

func (i *impl) candidate() {
	i.RegisterRule(models.CandidateModule, models.CreatePermission, AdminHrRoleSet, "/api/v1/space/candidate [post]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, OperatorRoles, "/api/v1/space/candidate/list [post]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, OperatorRoles, "/api/v1/space/candidate/{id} [get]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, OperatorRoles, "/api/v1/space/candidate/{id}/stage [get]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, OperatorRoles, "/api/v1/space/candidate/{id}/transitions [get]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, OperatorRoles, "/api/v1/space/candidate/{id}/history [post]", nil)
	i.RegisterRule(models.CandidateModule, models.EditPermission, []models.UserRole{models.HRRole, models.HODRole}, "/api/v1/space/candidate/{id} [put]", nil)
	i.RegisterRule(models.CandidateModule, models.NotesPermission, OperatorRoles, "/api/v1/space/candidate/{id}/comment [put]", nil)
}

func (i *impl) lifecycle() {
	i.RegisterRule(models.LifecycleModule, models.FlowPermission, FlowRoleSet, "/api/v1/space/candidate/{id}/transition/{name} [put]", nil)
}

func (i *impl) evidence() {
	i.RegisterRule(models.EvidenceModule, models.FilesPermission, EvidenceRoleSet, "/api/v1/space/candidate/{id}/evidence [post]", nil)
	i.RegisterRule(models.EvidenceModule, models.ViewPermission, OperatorRoles, "/api/v1/space/evidence [get]", nil)
}

func (i *impl) report() {
	i.RegisterRule(models.ReportModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/space/report [get]", nil)
	i.RegisterRule(models.ReportModule, models.ExportPermission, AdminHrRoleSet, "/api/v1/space/report/export [get]", nil)
}

func (i *impl) selfService() {
	i.RegisterRule(models.SelfServiceModule, models.EditPermission, CandidateRoleSet, candidateTestPattern, SelfOnlyFunc(CandidateRoleSet, candidateTestPattern))
	i.RegisterRule(models.SelfServiceModule, models.ViewPermission, CandidateRoleSet, "/api/v1/space/self [get]", nil)
}
