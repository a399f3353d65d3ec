// Package payroll computes monthly pay from attendance and rewards.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

const DefaultWorkingDays = 26

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch st := AttendanceStatus(s); st {
	case AttendancePresent, AttendanceHalfDay, AttendanceAbsent, AttendanceLeave:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_attendance_status")
}

type RewardKind string

const (
	RewardBonus   RewardKind = "bonus"
	RewardPenalty RewardKind = "penalty"
)

func ParseRewardKind(s string) (RewardKind, error) {
	switch k := RewardKind(s); k {
	case RewardBonus, RewardPenalty:
		return k, nil
	}
	return "", httperr.ErrBusiness("invalid_reward_kind")
}

type Payslip struct {
	StaffMemberID uint   `json:"staff_member_id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`

	BaseSalary    int64   `json:"base_salary"`
	WorkingDays   int     `json:"working_days"`
	WorkedDays    float64 `json:"worked_days"`
	AbsentDays    int     `json:"absent_days"`
	OvertimeHours float64 `json:"overtime_hours"`

	BasePay     int64 `json:"base_pay"`
	OvertimePay int64 `json:"overtime_pay"`
	Bonuses     int64 `json:"bonuses"`
	Penalties   int64 `json:"penalties"`
	NetPay      int64 `json:"net_pay"`
}

type Totals struct {
	Staff       int   `json:"staff"`
	BasePay     int64 `json:"base_pay"`
	OvertimePay int64 `json:"overtime_pay"`
	Bonuses     int64 `json:"bonuses"`
	Penalties   int64 `json:"penalties"`
	NetPay      int64 `json:"net_pay"`
}

// Calculate applies the studio formula for one month:
//
//	worked  = present + leave + 0.5*half_day
//	base    = round(baseSalary / workingDays * worked)
//	ot      = round(overtimeHours * hourlyRate)
//	net     = max(0, base + ot + bonuses - penalties)
//
// Records outside the month are ignored.
func Calculate(
	staff models.StaffMember,
	year int,
	month time.Month,
	attendance []models.Attendance,
	rewards []models.Reward,
) Payslip {
	workingDays := staff.WorkingDaysPerMonth
	if workingDays <= 0 {
		workingDays = DefaultWorkingDays
	}

	inMonth := func(t time.Time) bool {
		return t.Year() == year && t.Month() == month
	}

	worked := decimal.Zero
	overtime := decimal.Zero
	absent := 0
	half := decimal.NewFromFloat(0.5)

	for _, a := range attendance {
		if a.StaffMemberID != staff.ID || !inMonth(a.Date) {
			continue
		}
		switch AttendanceStatus(a.Status) {
		case AttendancePresent, AttendanceLeave:
			worked = worked.Add(decimal.NewFromInt(1))
		case AttendanceHalfDay:
			worked = worked.Add(half)
		case AttendanceAbsent:
			absent++
		}
		if a.OvertimeHours > 0 {
			overtime = overtime.Add(decimal.NewFromFloat(a.OvertimeHours))
		}
	}

	var bonuses, penalties int64
	for _, r := range rewards {
		if r.StaffMemberID != staff.ID || !inMonth(r.Date) || r.Amount <= 0 {
			continue
		}
		switch RewardKind(r.Kind) {
		case RewardBonus:
			bonuses += r.Amount
		case RewardPenalty:
			penalties += r.Amount
		}
	}

	basePay := decimal.NewFromInt(staff.BaseSalary).
		Div(decimal.NewFromInt(int64(workingDays))).
		Mul(worked).
		Round(0).
		IntPart()

	overtimePay := overtime.
		Mul(decimal.NewFromInt(staff.HourlyRate)).
		Round(0).
		IntPart()

	net := basePay + overtimePay + bonuses - penalties
	if net < 0 {
		net = 0
	}

	workedF, _ := worked.Float64()
	overtimeF, _ := overtime.Float64()

	return Payslip{
		StaffMemberID: staff.ID,
		Name:          staff.Name,
		Position:      staff.Position,
		Year:          year,
		Month:         int(month),
		BaseSalary:    staff.BaseSalary,
		WorkingDays:   workingDays,
		WorkedDays:    workedF,
		AbsentDays:    absent,
		OvertimeHours: overtimeF,
		BasePay:       basePay,
		OvertimePay:   overtimePay,
		Bonuses:       bonuses,
		Penalties:     penalties,
		NetPay:        net,
	}
}

func Sum(slips []Payslip) Totals {
	t := Totals{Staff: len(slips)}
	for _, s := range slips {
		t.BasePay += s.BasePay
		t.OvertimePay += s.OvertimePay
		t.Bonuses += s.Bonuses
		t.Penalties += s.Penalties
		t.NetPay += s.NetPay
	}
	return t
}
