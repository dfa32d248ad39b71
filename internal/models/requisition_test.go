package models

import "testing"

func TestIsValidRequisitionTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{RequisitionStatusDraft, RequisitionStatusSubmitted, true},
		{RequisitionStatusSubmitted, RequisitionStatusApproved, true},
		{RequisitionStatusSubmitted, RequisitionStatusRejected, true},

		// Cancellation paths
		{RequisitionStatusDraft, RequisitionStatusCancelled, true},
		{RequisitionStatusSubmitted, RequisitionStatusCancelled, true},

		// Invalid transitions
		{RequisitionStatusDraft, RequisitionStatusApproved, false},
		{RequisitionStatusDraft, RequisitionStatusRejected, false},
		{RequisitionStatusApproved, RequisitionStatusRejected, false},
		{RequisitionStatusApproved, RequisitionStatusSubmitted, false},
		{RequisitionStatusRejected, RequisitionStatusSubmitted, false},
		{RequisitionStatusCancelled, RequisitionStatusSubmitted, false},
		{"nonexistent", RequisitionStatusSubmitted, false},
		{RequisitionStatusDraft, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidRequisitionTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidRequisitionTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	terminal := []string{RequisitionStatusApproved, RequisitionStatusRejected, RequisitionStatusCancelled}
	for _, status := range terminal {
		transitions := ValidRequisitionTransitions[status]
		if len(transitions) != 0 {
			t.Errorf("terminal status %q should have no transitions, got %v", status, transitions)
		}
	}
}
