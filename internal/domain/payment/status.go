package payment

type IntentStatus string

const (
	IntentPending           IntentStatus = "pending"
	IntentSucceeded         IntentStatus = "succeeded"
	IntentFailed            IntentStatus = "failed"
	IntentRefunded          IntentStatus = "refunded"
	IntentPartiallyRefunded IntentStatus = "partially_refunded"
)

func (s IntentStatus) String() string {
	return string(s)
}

func (s IntentStatus) IsValid() bool {
	switch s {
	case IntentPending, IntentSucceeded, IntentFailed, IntentRefunded, IntentPartiallyRefunded:
		return true
	default:
		return false
	}
}

// Collected reports whether money was captured at some point.
func (s IntentStatus) Collected() bool {
	return s == IntentSucceeded || s == IntentRefunded || s == IntentPartiallyRefunded
}

type RefundStatus string

const (
	RefundNone             RefundStatus = "none"
	RefundRequested        RefundStatus = "requested"
	RefundProcessing       RefundStatus = "processing"
	RefundFailed           RefundStatus = "failed"
	RefundSucceeded        RefundStatus = "succeeded"
	RefundEscalated        RefundStatus = "escalated"
	RefundManuallyResolved RefundStatus = "manually_resolved"
)

func (s RefundStatus) String() string {
	return string(s)
}

func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundNone, RefundRequested, RefundProcessing, RefundFailed,
		RefundSucceeded, RefundEscalated, RefundManuallyResolved:
		return true
	default:
		return false
	}
}

// Outstanding is true while money owed to the guest has not been returned or written off.
func (s RefundStatus) Outstanding() bool {
	switch s {
	case RefundRequested, RefundProcessing, RefundFailed, RefundEscalated:
		return true
	default:
		return false
	}
}
