package domain

import (
	"testing"
	"time"
)

func gateUser(plan Plan, resumeUsed, profileUsed int) *User {
	return &User{
		ID:         "u1",
		Plan:       plan,
		PlanStatus: PlanActive,
		Usage:      Usage{ResumeScans: resumeUsed, ProfileScans: profileUsed, ResetAt: time.Now().UTC()},
	}
}

func TestCanPerform_ScanQuotas(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name   string
		plan   Plan
		used   int
		action Action
		want   bool
	}{
		{"free denied", PlanFree, 0, ActionResumeScan, false},
		{"one_time first scan", PlanOneTime, 0, ActionResumeScan, true},
		{"one_time exhausted", PlanOneTime, 1, ActionResumeScan, false},
		{"basic under limit", PlanBasic, 4, ActionResumeScan, true},
		{"basic at limit", PlanBasic, 5, ActionResumeScan, false},
		{"pro unlimited", PlanPro, 1000, ActionResumeScan, true},
		{"profile counter independent", PlanBasic, 5, ActionProfileScan, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := gateUser(tc.plan, tc.used, 0)
			if got := u.CanPerform(tc.action, now); got != tc.want {
				t.Errorf("CanPerform(%s) on %s with %d used = %v, want %v",
					tc.action, tc.plan, tc.used, got, tc.want)
			}
		})
	}
}

func TestCanPerform_PriorMonthCountersReset(t *testing.T) {
	now := time.Now().UTC()

	// Quota exhausted in a previous calendar month: the new month starts a
	// fresh period even when no billing event arrived in between.
	u := gateUser(PlanBasic, 5, 5)
	u.Usage.ResetAt = MonthStartUTC(now).AddDate(0, -1, 0)

	if !u.CanPerform(ActionResumeScan, now) {
		t.Error("counters from a prior month must not deny a new month's scan")
	}
	if !u.CanPerform(ActionProfileScan, now) {
		t.Error("profile counter from a prior month must also read as zero")
	}
	if got := u.Usage.Current(now); got.ResumeScans != 0 || !got.ResetAt.Equal(MonthStartUTC(now)) {
		t.Errorf("effective usage must be a fresh period, got %+v", got)
	}

	// Counters stamped within the current month still bind.
	u.Usage.ResetAt = MonthStartUTC(now)
	if u.CanPerform(ActionResumeScan, now) {
		t.Error("current-month counters at the limit must deny")
	}
}

func TestCanPerform_Entitlements(t *testing.T) {
	now := time.Now().UTC()

	// comparison_view and api_access are pro-only; content_export is any paid.
	for _, plan := range []Plan{PlanFree, PlanOneTime, PlanBasic} {
		u := gateUser(plan, 0, 0)
		if u.CanPerform(ActionComparisonView, now) {
			t.Errorf("comparison_view must be denied on %s", plan)
		}
		if u.CanPerform(ActionAPIAccess, now) {
			t.Errorf("api_access must be denied on %s", plan)
		}
	}
	pro := gateUser(PlanPro, 0, 0)
	if !pro.CanPerform(ActionComparisonView, now) || !pro.CanPerform(ActionAPIAccess, now) {
		t.Error("pro must have comparison_view and api_access")
	}

	if gateUser(PlanFree, 0, 0).CanPerform(ActionContentExport, now) {
		t.Error("content_export must be denied on free")
	}
	for _, plan := range []Plan{PlanOneTime, PlanBasic, PlanPro} {
		if !gateUser(plan, 0, 0).CanPerform(ActionContentExport, now) {
			t.Errorf("content_export must be allowed on %s", plan)
		}
	}
}

func TestCanPerform_ExpiryOverridesEverything(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Minute)

	u := gateUser(PlanPro, 0, 0)
	u.PlanExpires = &past

	for _, action := range []Action{ActionResumeScan, ActionProfileScan, ActionContentExport, ActionAPIAccess, ActionComparisonView} {
		if u.CanPerform(action, now) {
			t.Errorf("expired plan must deny %s", action)
		}
	}

	future := now.Add(time.Hour)
	u.PlanExpires = &future
	if !u.CanPerform(ActionResumeScan, now) {
		t.Error("a future expiry must not deny anything")
	}
}

func TestDeny_Reasons(t *testing.T) {
	now := time.Now().UTC()

	expired := gateUser(PlanPro, 0, 0)
	past := now.Add(-time.Minute)
	expired.PlanExpires = &past
	if got := expired.Deny(ActionResumeScan, now); got.Reason != "plan_expired" {
		t.Errorf("expected plan_expired, got %q", got.Reason)
	}

	exhausted := gateUser(PlanBasic, 5, 0)
	ge := exhausted.Deny(ActionResumeScan, now)
	if ge.Reason != "quota_exhausted" {
		t.Errorf("expected quota_exhausted, got %q", ge.Reason)
	}
	if ge.Used != 5 || ge.Limit != 5 {
		t.Errorf("denial must carry used/limit, got %d/%d", ge.Used, ge.Limit)
	}

	free := gateUser(PlanFree, 0, 0)
	if got := free.Deny(ActionResumeScan, now); got.Reason != "entitlement_required" {
		t.Errorf("expected entitlement_required, got %q", got.Reason)
	}
	if got := gateUser(PlanBasic, 0, 0).Deny(ActionComparisonView, now); got.Reason != "entitlement_required" {
		t.Errorf("expected entitlement_required for feature action, got %q", got.Reason)
	}
}

func TestScanAction(t *testing.T) {
	if ScanAction(KindResume) != ActionResumeScan {
		t.Error("resume kind must map to resume_scan")
	}
	if ScanAction(KindProfile) != ActionProfileScan {
		t.Error("profile kind must map to profile_scan")
	}
}
