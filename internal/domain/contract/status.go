package contract

import "github.com/BruksfildServices01/studio-manager/internal/domain/fsm"

type Status string

const (
	StatusWaitingSchedule Status = "waiting_schedule"
	StatusScheduled       Status = "scheduled"
	StatusRetouch         Status = "retouch"
	StatusHandover        Status = "handover"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
)

var Machine = fsm.New("contract",
	fsm.State[Status]{
		Status:  StatusWaitingSchedule,
		Display: fsm.Display{Label: "Chờ lên lịch", Color: "amber", Icon: "calendar-clock"},
		Next:    []Status{StatusScheduled, StatusCancelled},
	},
	fsm.State[Status]{
		Status:  StatusScheduled,
		Display: fsm.Display{Label: "Đã lên lịch chụp", Color: "blue", Icon: "camera"},
		Next:    []Status{StatusRetouch, StatusCancelled},
	},
	fsm.State[Status]{
		Status:  StatusRetouch,
		Display: fsm.Display{Label: "Đang hậu kỳ", Color: "purple", Icon: "wand"},
		Next:    []Status{StatusHandover, StatusCancelled},
	},
	fsm.State[Status]{
		Status:  StatusHandover,
		Display: fsm.Display{Label: "Bàn giao", Color: "teal", Icon: "package"},
		Next:    []Status{StatusCompleted},
	},
	fsm.State[Status]{
		Status:  StatusCompleted,
		Display: fsm.Display{Label: "Hoàn thành", Color: "green", Icon: "check-circle"},
	},
	fsm.State[Status]{
		Status:  StatusCancelled,
		Display: fsm.Display{Label: "Đã hủy", Color: "red", Icon: "x-circle"},
	},
)

func InitialStatus() Status {
	return StatusWaitingSchedule
}

// IsOpen reports whether the contract still accepts changes and payments.
func IsOpen(s Status) bool {
	return s != StatusCompleted && s != StatusCancelled
}
