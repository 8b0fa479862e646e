// Package chatbot implements the service-assistant conversation: a
// state machine that walks a user from GDPR consent through device
// verification and AI-assisted diagnosis to a booked service visit.
package chatbot

// State is a conversation phase.
type State string

const (
	StateWelcome             State = "welcome"
	StateGDPR                State = "gdpr"
	StateDeviceVerification  State = "device_verification"
	StateIssueAnalysis       State = "issue_analysis"
	StateCheckResolution     State = "check_resolution"
	StateIssueReported       State = "issue_reported"
	StateServiceScheduling   State = "service_scheduling"
	StateCollectCustomerInfo State = "collect_customer_info"
	StateConfirmation        State = "confirmation"
	StateEnd                 State = "end"
)

// validTransitions lists the allowed moves between conversation phases.
// Anything not listed is rejected and the conversation stays put.
var validTransitions = map[State][]State{
	StateWelcome:             {StateDeviceVerification},
	StateGDPR:                {StateDeviceVerification, StateEnd},
	StateDeviceVerification:  {StateIssueAnalysis, StateGDPR},
	StateIssueAnalysis:       {StateCheckResolution, StateIssueReported},
	StateCheckResolution:     {StateEnd, StateIssueReported},
	StateIssueReported:       {StateServiceScheduling, StateEnd},
	StateServiceScheduling:   {StateCollectCustomerInfo, StateEnd},
	StateCollectCustomerInfo: {StateConfirmation, StateServiceScheduling},
	StateConfirmation:        {StateEnd, StateServiceScheduling, StateCollectCustomerInfo},
	StateEnd:                 {StateWelcome},
}

// CanTransition reports whether moving from s to next is allowed.
func (s State) CanTransition(next State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
