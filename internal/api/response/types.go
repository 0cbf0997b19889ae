package response

import (
	"time"

	"github.com/dmaraujo/treinos/internal/model"
)

// User is the API representation of an account
type User struct {
	ID            string `json:"id"`
	CharacterName string `json:"character_name"`
	Vocation      string `json:"vocation"`
	IsAdmin       bool   `json:"is_admin"`
}

func UserFromModel(u *model.User) User {
	return User{
		ID:            string(u.ID),
		CharacterName: u.CharacterName,
		Vocation:      string(u.Vocation),
		IsAdmin:       u.IsAdmin,
	}
}

// AuthResponse is returned from register and login
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Payment is the API representation of a recorded payment
type Payment struct {
	ID           string    `json:"id"`
	TrainingDate string    `json:"training_date"`
	Amount       int       `json:"amount"`
	State        string    `json:"state"`
	Proof        string    `json:"proof,omitempty"`
	PaidAt       time.Time `json:"paid_at"`
}

func PaymentFromRecord(r *model.PaymentRecord) Payment {
	return Payment{
		ID:           string(r.Payment.ID),
		TrainingDate: r.Payment.TrainingDate,
		Amount:       r.Amount,
		State:        string(r.State),
		Proof:        r.Payment.ProofText,
		PaidAt:       r.Payment.CreatedAt,
	}
}

func PaymentsFromRecords(records []*model.PaymentRecord) []Payment {
	payments := make([]Payment, len(records))
	for i, r := range records {
		payments[i] = PaymentFromRecord(r)
	}
	return payments
}

// Standing is one player's classified situation for a training day
type Standing struct {
	CharacterName string     `json:"character_name"`
	State         string     `json:"state"`
	AmountOwed    int        `json:"amount_owed"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ReportedBy    string     `json:"reported_by,omitempty"`
	Payment       *Payment   `json:"payment,omitempty"`
	PaymentCount  int        `json:"payment_count"`
}

func StandingFromModel(s *model.PlayerStanding) Standing {
	out := Standing{
		CharacterName: s.Player.CharacterName,
		State:         string(s.State),
		AmountOwed:    s.AmountOwed,
		PaymentCount:  s.PaymentCount,
	}
	if s.Deadline != nil {
		deadline := *s.Deadline
		out.Deadline = &deadline
	}
	if s.ReportedBy != nil {
		out.ReportedBy = string(*s.ReportedBy)
	}
	if s.Payment != nil {
		p := PaymentFromRecord(&model.PaymentRecord{
			Payment: *s.Payment,
			Amount:  s.AmountOwed,
			State:   s.State,
		})
		out.Payment = &p
	}
	return out
}

func StandingsFromModel(standings []*model.PlayerStanding) []Standing {
	out := make([]Standing, len(standings))
	for i, s := range standings {
		out[i] = StandingFromModel(s)
	}
	return out
}

// StandingsResponse groups a training day's standings
type StandingsResponse struct {
	TrainingDate string     `json:"training_date"`
	Standings    []Standing `json:"standings"`
}

// EarningsSummary is a reporter's bounty summary reconciled against
// recorded payouts
type EarningsSummary struct {
	CharacterName string `json:"character_name"`
	ReportsFiled  int    `json:"reports_filed"`
	LateCount     int    `json:"late_count"`
	PendingCount  int    `json:"pending_count"`
	TotalEarnings int    `json:"total_earnings"`
	TotalPaid     int    `json:"total_paid"`
	Balance       int    `json:"balance"`
}

func EarningsSummaryFromModel(e *model.UserEarnings) EarningsSummary {
	return EarningsSummary{
		CharacterName: e.CharacterName,
		ReportsFiled:  e.ReportsFiled,
		LateCount:     e.LateCount,
		PendingCount:  e.PendingCount,
		TotalEarnings: e.TotalEarnings,
		TotalPaid:     e.TotalPaid,
		Balance:       e.Balance,
	}
}

func LedgerFromModel(entries []*model.UserEarnings) []EarningsSummary {
	out := make([]EarningsSummary, len(entries))
	for i, e := range entries {
		out[i] = EarningsSummaryFromModel(e)
	}
	return out
}

// Payout is the API representation of a recorded reporter payout
type Payout struct {
	ID     string    `json:"id"`
	Amount int       `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

func PayoutFromModel(p *model.ReporterPayout) Payout {
	return Payout{
		ID:     string(p.ID),
		Amount: p.Amount,
		PaidAt: p.CreatedAt,
	}
}

// CheckIn is the API representation of a training check-in
type CheckIn struct {
	ID           string    `json:"id"`
	TrainingDate string    `json:"training_date"`
	CheckedAt    time.Time `json:"checked_at"`
}

func CheckInFromModel(c *model.CheckIn) CheckIn {
	return CheckIn{
		ID:           string(c.ID),
		TrainingDate: c.TrainingDate,
		CheckedAt:    c.CreatedAt,
	}
}

// PlayerActivity is one row of the activity board
type PlayerActivity struct {
	CharacterName string     `json:"character_name"`
	TotalCheckIns int        `json:"total_check_ins"`
	CheckInsToday int        `json:"check_ins_today"`
	ActiveToday   bool       `json:"active_today"`
	LastCheckIn   *time.Time `json:"last_check_in,omitempty"`
}

func ActivityBoardFromModel(board []*model.PlayerActivity) []PlayerActivity {
	out := make([]PlayerActivity, len(board))
	for i, a := range board {
		out[i] = PlayerActivity{
			CharacterName: a.Player.CharacterName,
			TotalCheckIns: a.TotalCheckIns,
			CheckInsToday: a.CheckInsToday,
			ActiveToday:   a.ActiveToday,
		}
		if a.LastCheckIn != nil {
			last := *a.LastCheckIn
			out[i].LastCheckIn = &last
		}
	}
	return out
}

// ReportDetail is one filed report with its resolved outcome
type ReportDetail struct {
	CharacterName string    `json:"character_name"`
	ReportedAt    time.Time `json:"reported_at"`
	Outcome       string    `json:"outcome"`
	Earnings      int       `json:"earnings"`
}

func ReportDetailFromModel(d *model.ReportDetail) ReportDetail {
	return ReportDetail{
		CharacterName: d.Player.CharacterName,
		ReportedAt:    d.Report.CreatedAt,
		Outcome:       string(d.Outcome),
		Earnings:      d.Earnings,
	}
}

func ReportDetailsFromModel(details []*model.ReportDetail) []ReportDetail {
	out := make([]ReportDetail, len(details))
	for i, d := range details {
		out[i] = ReportDetailFromModel(d)
	}
	return out
}

// CaloteiroRank is one row of the late-payer ranking
type CaloteiroRank struct {
	CharacterName string     `json:"character_name"`
	LateCount     int        `json:"late_count"`
	LastLate      *time.Time `json:"last_late,omitempty"`
}

func RankingFromModel(ranking []*model.CaloteiroRank) []CaloteiroRank {
	out := make([]CaloteiroRank, len(ranking))
	for i, r := range ranking {
		out[i] = CaloteiroRank{
			CharacterName: r.Player.CharacterName,
			LateCount:     r.LateCount,
		}
		if r.LastLate != nil {
			lastLate := *r.LastLate
			out[i].LastLate = &lastLate
		}
	}
	return out
}

// DailySummary compares a training day's revenue to the dummy cost
type DailySummary struct {
	TrainingDate string `json:"training_date"`
	PaymentCount int    `json:"payment_count"`
	Revenue      int    `json:"revenue"`
	DummyCost    int    `json:"dummy_cost"`
	Balance      int    `json:"balance"`
}

func DailySummaryFromModel(s *model.DailySummary) DailySummary {
	return DailySummary{
		TrainingDate: s.TrainingDate,
		PaymentCount: s.PaymentCount,
		Revenue:      s.Revenue,
		DummyCost:    s.DummyCost,
		Balance:      s.Balance,
	}
}

// SkillValue is one skill's level and progress
type SkillValue struct {
	Level   int `json:"level"`
	Percent int `json:"percent"`
}

// SkillSnapshot is the API representation of a recorded skill snapshot
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

func skillValueFromModel(v *model.SkillValue) *SkillValue {
	if v == nil {
		return nil
	}
	return &SkillValue{Level: v.Level, Percent: v.Percent}
}

func SkillSnapshotFromModel(s *model.SkillSnapshot) SkillSnapshot {
	return SkillSnapshot{
		ID:         string(s.ID),
		RecordedAt: s.RecordedAt,
		Sword:      skillValueFromModel(s.Sword),
		Club:       skillValueFromModel(s.Club),
		Axe:        skillValueFromModel(s.Axe),
		Distance:   skillValueFromModel(s.Distance),
		Shielding:  skillValueFromModel(s.Shielding),
		Magic:      skillValueFromModel(s.Magic),
	}
}

func SkillSnapshotsFromModel(snapshots []*model.SkillSnapshot) []SkillSnapshot {
	out := make([]SkillSnapshot, len(snapshots))
	for i, s := range snapshots {
		out[i] = SkillSnapshotFromModel(s)
	}
	return out
}
