// Package engine is the single source of truth for module access: it computes
// the effective access status per (student, module) and validates and applies
// every transition of an access request. The engine is stateless; all durable
// state lives in the repositories and nothing is cached here.
package engine

import (
	"errors"
	"fmt"

	"academy/catalog"
	"academy/models"
	"academy/repository"

	"gorm.io/gorm"
)

// Decision actions accepted by Decide.
const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

const maxPendingPageSize = 10

type Engine struct {
	requests *repository.AccessRequestRepo
	progress *repository.ProgressRepo
	catalog  *catalog.Catalog

	// When set, re-requesting an approved module resets it to pending,
	// matching the original site. Off by default: approved wins.
	allowRerequestApproved bool
}

// Default is the engine instance wired in main, used by the controllers.
var Default *Engine

func New(db *gorm.DB, cat *catalog.Catalog, allowRerequestApproved bool) *Engine {
	return &Engine{
		requests:               repository.NewAccessRequestRepo(db),
		progress:               repository.NewProgressRepo(db),
		catalog:                cat,
		allowRerequestApproved: allowRerequestApproved,
	}
}

// Setup wires the package-level engine used by the HTTP layer.
func Setup(db *gorm.DB, cat *catalog.Catalog, allowRerequestApproved bool) {
	Default = New(db, cat, allowRerequestApproved)
}

// EffectiveStatus computes the access status every surface must agree on.
// Priority order:
//  1. An explicit request row is authoritative regardless of access_type, so
//     a denied row overrides an open module (deliberate revoke path).
//  2. Open modules other than the designated free one are auto-granted.
//  3. Otherwise the module was never requested.
func (e *Engine) EffectiveStatus(module models.Module, req *models.AccessRequest) string {
	if req != nil {
		return req.Status
	}
	if module.AccessType == models.AccessTypeOpen && module.ID != e.catalog.FreeModuleID() {
		return models.AccessApproved
	}
	return models.AccessNotRequested
}

// StatusFor loads the request row for a pair and computes the effective
// status. Used by content gating.
func (e *Engine) StatusFor(studentID, moduleID uint) (string, error) {
	module, ok := e.catalog.Get(moduleID)
	if !ok {
		return "", ErrInvalidModule
	}
	req, err := e.requests.FindByPair(studentID, moduleID)
	if err != nil {
		return "", fmt.Errorf("loading access request: %w", err)
	}
	return e.EffectiveStatus(module, req), nil
}

// UnlockFreeModule grants the designated free module to a student via a
// single approved upsert. Idempotent: repeated calls end in the same state.
func (e *Engine) UnlockFreeModule(studentID uint) error {
	if err := e.requests.UpsertApproved(studentID, e.catalog.FreeModuleID()); err != nil {
		return fmt.Errorf("unlocking free module: %w", err)
	}
	return nil
}

// RequestAccess upserts a pending request for each module in the set. Any id
// outside the catalog rejects the entire call before the first write.
func (e *Engine) RequestAccess(studentID uint, moduleIDs []int) error {
	if len(moduleIDs) == 0 {
		return ErrNoModules
	}
	for _, id := range moduleIDs {
		if !e.catalog.IsValidModuleID(id) {
			return ErrInvalidModule
		}
	}

	for _, id := range moduleIDs {
		if err := e.requests.UpsertPending(studentID, uint(id), !e.allowRerequestApproved); err != nil {
			return fmt.Errorf("requesting module %d: %w", id, err)
		}
	}
	return nil
}

// Decide applies an admin approve/deny to one request. The write is a plain
// overwrite of status and comment; re-deciding is harmless.
func (e *Engine) Decide(requestID uint, action, comment string) (*models.AccessRequest, error) {
	var status string
	switch action {
	case ActionApprove:
		status = models.AccessApproved
	case ActionDeny:
		status = models.AccessDenied
	default:
		return nil, ErrInvalidAction
	}

	req, err := e.requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading access request: %w", err)
	}

	if !e.catalog.IsValidModuleID(int(req.ModuleID)) {
		return nil, ErrInvalidModule
	}

	if err := e.requests.UpdateDecision(requestID, status, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating access request: %w", err)
	}

	req.Status = status
	req.AdminComment = comment
	return req, nil
}

// ListPending returns the admin review queue, newest first. The page size is
// clamped to 10.
func (e *Engine) ListPending(limit int) ([]repository.PendingRequest, error) {
	if limit <= 0 || limit > maxPendingPageSize {
		limit = maxPendingPageSize
	}
	rows, err := e.requests.ListPending(limit, e.catalog.Cap())
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}
	return rows, nil
}

// ModuleStatus is one dashboard row: catalog fields plus the computed access
// status and the student's progress.
type ModuleStatus struct {
	ID                  uint   `json:"id"`
	ModuleName          string `json:"module_name"`
	Description         string `json:"description"`
	AccessType          string `json:"access_type"`
	AccessStatus        string `json:"access_status"`
	ProgressStatus      string `json:"progress_status"`
	PercentageCompleted int    `json:"percentage_completed"`
}

// DashboardModules computes the full dashboard view for a student: every
// offered module with its effective access status and progress fields.
func (e *Engine) DashboardModules(studentID uint) ([]ModuleStatus, error) {
	requests, err := e.requests.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("loading access requests: %w", err)
	}
	progress, err := e.progress.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}

	modules := e.catalog.Modules()
	statuses := make([]ModuleStatus, 0, len(modules))
	for _, m := range modules {
		var req *models.AccessRequest
		if row, ok := requests[m.ID]; ok {
			reqCopy := row
			req = &reqCopy
		}

		status := ModuleStatus{
			ID:           m.ID,
			ModuleName:   m.ModuleName,
			Description:  m.Description,
			AccessType:   m.AccessType,
			AccessStatus: e.EffectiveStatus(m, req),
		}
		if p, ok := progress[m.ID]; ok {
			status.ProgressStatus = p.ProgressStatus
			status.PercentageCompleted = p.PercentageCompleted
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
