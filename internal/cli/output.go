package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case StandingsResult:
		o.printStandings(v)
	case Standing:
		o.printStanding(v)
	case Payment:
		o.printPayment(v)
	case []Payment:
		o.printPayments(v)
	case EarningsSummary:
		o.printEarnings(v)
	case []EarningsSummary:
		o.printLedger(v)
	case []ReportDetail:
		o.printReportDetails(v)
	case CheckInResult:
		o.printCheckIn(v)
	case []ActivityEntry:
		o.printActivity(v)
	case PayoutResult:
		o.printPayout(v)
	case []RankEntry:
		o.printRanking(v)
	case DailySummary:
		o.printDailySummary(v)
	case SkillSnapshot:
		o.printSkillSnapshot(v)
	case []SkillSnapshot:
		o.printSkillHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID            string `json:"id"`
	CharacterName string `json:"character_name"`
	Vocation      string `json:"vocation"`
	IsAdmin       bool   `json:"is_admin"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Payment response type
type Payment struct {
	ID           string    `json:"id"`
	TrainingDate string    `json:"training_date"`
	Amount       int       `json:"amount"`
	State        string    `json:"state"`
	Proof        string    `json:"proof,omitempty"`
	PaidAt       time.Time `json:"paid_at"`
}

// Standing response type
type Standing struct {
	CharacterName string     `json:"character_name"`
	State         string     `json:"state"`
	AmountOwed    int        `json:"amount_owed"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ReportedBy    string     `json:"reported_by,omitempty"`
	Payment       *Payment   `json:"payment,omitempty"`
	PaymentCount  int        `json:"payment_count"`
}

// StandingsResult response type
type StandingsResult struct {
	TrainingDate string     `json:"training_date"`
	Standings    []Standing `json:"standings"`
}

// EarningsSummary response type
type EarningsSummary struct {
	CharacterName string `json:"character_name"`
	ReportsFiled  int    `json:"reports_filed"`
	LateCount     int    `json:"late_count"`
	PendingCount  int    `json:"pending_count"`
	TotalEarnings int    `json:"total_earnings"`
	TotalPaid     int    `json:"total_paid"`
	Balance       int    `json:"balance"`
}

// CheckInResult response type
type CheckInResult struct {
	ID           string    `json:"id"`
	TrainingDate string    `json:"training_date"`
	CheckedAt    time.Time `json:"checked_at"`
}

// ActivityEntry response type
type ActivityEntry struct {
	CharacterName string     `json:"character_name"`
	TotalCheckIns int        `json:"total_check_ins"`
	CheckInsToday int        `json:"check_ins_today"`
	ActiveToday   bool       `json:"active_today"`
	LastCheckIn   *time.Time `json:"last_check_in,omitempty"`
}

// PayoutResult response type
type PayoutResult struct {
	ID     string    `json:"id"`
	Amount int       `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

// ReportDetail response type
type ReportDetail struct {
	CharacterName string    `json:"character_name"`
	ReportedAt    time.Time `json:"reported_at"`
	Outcome       string    `json:"outcome"`
	Earnings      int       `json:"earnings"`
}

// RankEntry response type
type RankEntry struct {
	CharacterName string     `json:"character_name"`
	LateCount     int        `json:"late_count"`
	LastLate      *time.Time `json:"last_late,omitempty"`
}

// DailySummary response type
type DailySummary struct {
	TrainingDate string `json:"training_date"`
	PaymentCount int    `json:"payment_count"`
	Revenue      int    `json:"revenue"`
	DummyCost    int    `json:"dummy_cost"`
	Balance      int    `json:"balance"`
}

// SkillValue response type
type SkillValue struct {
	Level   int `json:"level"`
	Percent int `json:"percent"`
}

// SkillSnapshot response type
type SkillSnapshot struct {
	ID         string      `json:"id"`
	RecordedAt time.Time   `json:"recorded_at"`
	Sword      *SkillValue `json:"sword,omitempty"`
	Club       *SkillValue `json:"club,omitempty"`
	Axe        *SkillValue `json:"axe,omitempty"`
	Distance   *SkillValue `json:"distance,omitempty"`
	Shielding  *SkillValue `json:"shielding,omitempty"`
	Magic      *SkillValue `json:"magic,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	adminStr := ""
	if u.IsAdmin {
		adminStr = " [admin]"
	}
	fmt.Printf("Character: %s (%s)%s\n", u.CharacterName, u.Vocation, adminStr)
	fmt.Printf("ID: %s\n", u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printStandings(r StandingsResult) {
	fmt.Printf("Training day: %s\n", r.TrainingDate)
	if len(r.Standings) == 0 {
		fmt.Println("No players tracked")
		return
	}
	for _, s := range r.Standings {
		fmt.Printf("  %-24s %-24s %s\n", s.CharacterName, s.State, gold(s.AmountOwed))
		if s.Deadline != nil && !isPaidState(s.State) {
			fmt.Printf("    deadline: %s\n", s.Deadline.Format("15:04:05"))
		}
	}
}

func (o *Output) printStanding(s Standing) {
	fmt.Printf("Player: %s\n", s.CharacterName)
	fmt.Printf("State: %s\n", s.State)
	fmt.Printf("Owed: %s\n", gold(s.AmountOwed))
	if s.Deadline != nil {
		fmt.Printf("Deadline: %s\n", s.Deadline.Format("15:04:05"))
	}
	fmt.Printf("Payments on record: %d\n", s.PaymentCount)
}

func (o *Output) printPayment(p Payment) {
	fmt.Printf("Payment: %s (%s)\n", gold(p.Amount), p.State)
	fmt.Printf("Training day: %s\n", p.TrainingDate)
	fmt.Printf("Paid at: %s\n", p.PaidAt.Format(time.RFC3339))
	if p.Proof != "" {
		fmt.Printf("Proof: %s\n", p.Proof)
	}
}

func (o *Output) printPayments(payments []Payment) {
	if len(payments) == 0 {
		fmt.Println("No payments")
		return
	}
	for _, p := range payments {
		fmt.Printf("  %s  %-14s %s\n", p.TrainingDate, p.State, gold(p.Amount))
	}
}

func (o *Output) printEarnings(e EarningsSummary) {
	fmt.Printf("Reports filed: %d\n", e.ReportsFiled)
	fmt.Printf("Caught late: %d\n", e.LateCount)
	fmt.Printf("Still pending: %d\n", e.PendingCount)
	fmt.Printf("Total earned: %s\n", gold(e.TotalEarnings))
	fmt.Printf("Paid out: %s\n", gold(e.TotalPaid))
	fmt.Printf("Owed to you: %s\n", gold(e.Balance))
}

func (o *Output) printLedger(entries []EarningsSummary) {
	if len(entries) == 0 {
		fmt.Println("No reporters with activity")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %-24s earned %-12s paid %-12s owed %s\n",
			e.CharacterName, gold(e.TotalEarnings), gold(e.TotalPaid), gold(e.Balance))
	}
}

func (o *Output) printCheckIn(c CheckInResult) {
	fmt.Printf("Checked in for training day %s\n", c.TrainingDate)
	fmt.Printf("At: %s\n", c.CheckedAt.Format(time.RFC3339))
}

func (o *Output) printActivity(board []ActivityEntry) {
	if len(board) == 0 {
		fmt.Println("No check-ins recorded")
		return
	}
	for _, a := range board {
		marker := " "
		if a.ActiveToday {
			marker = "*"
		}
		last := ""
		if a.LastCheckIn != nil {
			last = " (last: " + a.LastCheckIn.Format("2006-01-02") + ")"
		}
		fmt.Printf("  %s %-24s %d check-ins, %d today%s\n",
			marker, a.CharacterName, a.TotalCheckIns, a.CheckInsToday, last)
	}
}

func (o *Output) printPayout(p PayoutResult) {
	fmt.Printf("Payout: %s\n", gold(p.Amount))
	fmt.Printf("Paid at: %s\n", p.PaidAt.Format(time.RFC3339))
}

func (o *Output) printReportDetails(details []ReportDetail) {
	if len(details) == 0 {
		fmt.Println("No reports filed")
		return
	}
	for _, d := range details {
		fmt.Printf("  %s  %-24s %-14s %s\n",
			d.ReportedAt.Format("2006-01-02 15:04"), d.CharacterName, d.Outcome, gold(d.Earnings))
	}
}

func (o *Output) printRanking(ranking []RankEntry) {
	if len(ranking) == 0 {
		fmt.Println("Nobody has paid late. Yet.")
		return
	}
	for i, r := range ranking {
		last := ""
		if r.LastLate != nil {
			last = " (last: " + r.LastLate.Format("2006-01-02") + ")"
		}
		fmt.Printf("  %d. %-24s %d late%s\n", i+1, r.CharacterName, r.LateCount, last)
	}
}

func (o *Output) printDailySummary(s DailySummary) {
	fmt.Printf("Training day: %s\n", s.TrainingDate)
	fmt.Printf("Payments: %d\n", s.PaymentCount)
	fmt.Printf("Revenue: %s\n", gold(s.Revenue))
	fmt.Printf("Dummy cost: %s\n", gold(s.DummyCost))
	fmt.Printf("Balance: %s\n", gold(s.Balance))
}

func (o *Output) printSkillSnapshot(s SkillSnapshot) {
	fmt.Printf("Snapshot recorded at %s\n", s.RecordedAt.Format(time.RFC3339))
	printSkill("Sword", s.Sword)
	printSkill("Club", s.Club)
	printSkill("Axe", s.Axe)
	printSkill("Distance", s.Distance)
	printSkill("Shielding", s.Shielding)
	printSkill("Magic", s.Magic)
}

func (o *Output) printSkillHistory(snapshots []SkillSnapshot) {
	if len(snapshots) == 0 {
		fmt.Println("No snapshots recorded")
		return
	}
	for _, s := range snapshots {
		o.printSkillSnapshot(s)
		fmt.Println()
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func printSkill(name string, v *SkillValue) {
	if v == nil {
		return
	}
	fmt.Printf("  %-10s %d (%d%%)\n", name, v.Level, v.Percent)
}

func isPaidState(state string) bool {
	return state == "paid_on_time" || state == "paid_late"
}

func gold(amount int) string {
	return fmt.Sprintf("%d gp", amount)
}
