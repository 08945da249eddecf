package domain

import "time"

// Action is a plan-gated operation a user may request.
type Action string

const (
	ActionResumeScan     Action = "resume_scan"
	ActionProfileScan    Action = "profile_scan"
	ActionContentExport  Action = "content_export"
	ActionAPIAccess      Action = "api_access"
	ActionComparisonView Action = "comparison_view"
)

// scanLimits defines how many scans per billing period each plan allows.
// Plans absent from the table (free) allow none; a negative limit means
// unlimited.
var scanLimits = map[Plan]int{
	PlanOneTime: 1,
	PlanBasic:   5,
	PlanPro:     -1,
}

// ScanLimit returns the per-period scan limit for a plan: (0, false) when the
// plan allows no scans, (-1, true) when unlimited.
func ScanLimit(p Plan) (int, bool) {
	limit, ok := scanLimits[p]
	return limit, ok
}

// CanPerform is the pure entitlement predicate: given the user's plan state
// and usage counters, it decides whether action is permitted at time now.
// An expiry date in the past denies everything, regardless of plan; counters
// from a prior calendar month count as zero.
// It has no side effects; callers increment counters only after the gated
// action actually succeeds.
func (u *User) CanPerform(action Action, now time.Time) bool {
	if u.PlanExpires != nil && u.PlanExpires.Before(now) {
		return false
	}

	usage := u.Usage.Current(now)
	switch action {
	case ActionResumeScan:
		return u.allowScan(usage.ResumeScans)
	case ActionProfileScan:
		return u.allowScan(usage.ProfileScans)
	case ActionAPIAccess, ActionComparisonView:
		return u.Plan == PlanPro
	case ActionContentExport:
		return u.Plan != PlanFree
	}
	return false
}

func (u *User) allowScan(used int) bool {
	limit, ok := ScanLimit(u.Plan)
	if !ok {
		return false
	}
	if limit < 0 {
		return true
	}
	return used < limit
}

// GateError is the denial outcome of a gate check. It carries the plan and
// usage state the client needs to render an upgrade prompt, and is mapped to
// 403 by the transport layer rather than treated as a server error.
type GateError struct {
	Action Action     `json:"action"`
	Plan   Plan       `json:"plan"`
	Status PlanStatus `json:"plan_status"`
	Used   int        `json:"used,omitempty"`
	Limit  int        `json:"limit,omitempty"`
	Reason string     `json:"reason"` // plan_expired, quota_exhausted, entitlement_required
}

func (e *GateError) Error() string {
	return "action " + string(e.Action) + " denied: " + e.Reason
}

// Deny builds the GateError explaining why action was refused for this user.
// Callers should only invoke it after CanPerform returned false.
func (u *User) Deny(action Action, now time.Time) *GateError {
	ge := &GateError{Action: action, Plan: u.Plan, Status: u.PlanStatus}

	if u.PlanExpires != nil && u.PlanExpires.Before(now) {
		ge.Reason = "plan_expired"
		return ge
	}

	switch action {
	case ActionResumeScan, ActionProfileScan:
		limit, ok := ScanLimit(u.Plan)
		if !ok {
			ge.Reason = "entitlement_required"
			return ge
		}
		ge.Limit = limit
		usage := u.Usage.Current(now)
		if action == ActionResumeScan {
			ge.Used = usage.ResumeScans
		} else {
			ge.Used = usage.ProfileScans
		}
		ge.Reason = "quota_exhausted"
	default:
		ge.Reason = "entitlement_required"
	}
	return ge
}

// ScanAction maps a document kind to the gate action protecting its scan.
func ScanAction(kind DocumentKind) Action {
	if kind == KindProfile {
		return ActionProfileScan
	}
	return ActionResumeScan
}
