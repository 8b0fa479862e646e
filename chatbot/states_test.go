package chatbot

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"welcome to verification", StateWelcome, StateDeviceVerification, true},
		{"welcome cannot skip to analysis", StateWelcome, StateIssueAnalysis, false},
		{"verification to analysis", StateDeviceVerification, StateIssueAnalysis, true},
		{"analysis to resolution check", StateIssueAnalysis, StateCheckResolution, true},
		{"resolution check to reported", StateCheckResolution, StateIssueReported, true},
		{"reported to scheduling", StateIssueReported, StateServiceScheduling, true},
		{"scheduling to collect info", StateServiceScheduling, StateCollectCustomerInfo, true},
		{"collect info back to scheduling", StateCollectCustomerInfo, StateServiceScheduling, true},
		{"confirmation to end", StateConfirmation, StateEnd, true},
		{"confirmation decline re-collects data", StateConfirmation, StateCollectCustomerInfo, true},
		{"end restarts", StateEnd, StateWelcome, true},
		{"end cannot jump to confirmation", StateEnd, StateConfirmation, false},
		{"unknown state has no transitions", State("bogus"), StateEnd, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
