package model

import "time"

// Tariffs, in gold pieces
const (
	// BaseAmount is the daily training fee
	BaseAmount = 10000
	// PenaltyAmount is the surcharge for paying after the grace
	// deadline, owed to the reporter
	PenaltyAmount = 2000
	// LateAmount is the full fee once the grace deadline has passed
	LateAmount = BaseAmount + PenaltyAmount
	// GracePeriod is how long a reported player has to pay the base
	// amount before the penalty applies
	GracePeriod = 10 * time.Minute
	// DummyCost is the daily cost of keeping the training dummies up
	DummyCost = 140000
)

// PaymentState classifies a player's payment situation for one
// training day
type PaymentState string

const (
	StateNotReported          PaymentState = "not_reported"
	StateReportedWithinGrace  PaymentState = "reported_within_grace"
	StateReportedPastDeadline PaymentState = "reported_past_deadline"
	StatePaidOnTime           PaymentState = "paid_on_time"
	StatePaidLate             PaymentState = "paid_late"
)

// Paid reports whether the state represents a completed payment
func (s PaymentState) Paid() bool {
	return s == StatePaidOnTime || s == StatePaidLate
}

// PlayerStanding is one player's classified situation for a training day
type PlayerStanding struct {
	Player       Player
	State        PaymentState
	AmountOwed   int        // what paying would cost now, or what was paid
	Deadline     *time.Time // report deadline, when reported
	ReportedBy   *UserID
	Payment      *Payment // the qualifying payment, when paid
	PaymentCount int      // lifetime payments for this player
}

// PaymentRecord is a payment with its derived amount and state
type PaymentRecord struct {
	Payment Payment
	Amount  int
	State   PaymentState
}

// ReportOutcome classifies what became of a filed report
type ReportOutcome string

const (
	// OutcomePending means the target is still inside the grace window
	OutcomePending ReportOutcome = "pending"
	// OutcomePaidOnTime means the target paid within grace; no penalty
	OutcomePaidOnTime ReportOutcome = "paid_on_time"
	// OutcomeLate means the target paid late or never paid past the
	// deadline; the penalty is owed to the reporter
	OutcomeLate ReportOutcome = "late"
)

// ReportDetail is one filed report with its resolved outcome
type ReportDetail struct {
	Report   Report
	Player   Player
	Outcome  ReportOutcome
	Earnings int // PenaltyAmount when the outcome is late, else 0
}

// UserEarnings summarizes what a reporter has earned from penalties
// and how much of it has been settled by admin payouts
type UserEarnings struct {
	UserID        UserID
	CharacterName string
	ReportsFiled  int
	LateCount     int // reports whose outcome is late
	PendingCount  int // reports still inside the grace window
	TotalEarnings int // LateCount * PenaltyAmount
	TotalPaid     int // sum of admin payouts
	Balance       int // TotalEarnings - TotalPaid, what is still owed
}

// CaloteiroRank is one row of the late-payer ranking
type CaloteiroRank struct {
	Player    Player
	LateCount int
	LastLate  *time.Time
}

// DailySummary compares a training day's revenue to the dummy cost
type DailySummary struct {
	TrainingDate string
	PaymentCount int
	Revenue      int // PaymentCount * BaseAmount
	DummyCost    int
	Balance      int // Revenue - DummyCost
}
