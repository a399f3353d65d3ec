package retouch

import "github.com/BruksfildServices01/studio-manager/internal/domain/fsm"

type Status string

const (
	StatusAwaitingSelection Status = "awaiting_selection"
	StatusInProgress        Status = "in_progress"
	StatusAwaitingApproval  Status = "awaiting_approval"
	StatusRevisionRequested Status = "revision_requested"
	StatusCompleted         Status = "completed"
)

var Machine = fsm.New("retouch",
	fsm.State[Status]{
		Status:  StatusAwaitingSelection,
		Display: fsm.Display{Label: "Chờ khách chọn ảnh", Color: "amber", Icon: "images"},
		Next:    []Status{StatusInProgress},
	},
	fsm.State[Status]{
		Status:  StatusInProgress,
		Display: fsm.Display{Label: "Đang thực hiện", Color: "blue", Icon: "brush"},
		Next:    []Status{StatusAwaitingApproval},
	},
	fsm.State[Status]{
		Status:  StatusAwaitingApproval,
		Display: fsm.Display{Label: "Chờ khách duyệt", Color: "purple", Icon: "eye"},
		Next:    []Status{StatusCompleted, StatusRevisionRequested},
	},
	fsm.State[Status]{
		Status:  StatusRevisionRequested,
		Display: fsm.Display{Label: "Cần chỉnh sửa", Color: "orange", Icon: "rotate"},
		Next:    []Status{StatusInProgress},
	},
	fsm.State[Status]{
		Status:  StatusCompleted,
		Display: fsm.Display{Label: "Hoàn thành", Color: "green", Icon: "check-circle"},
	},
)

func InitialStatus() Status {
	return StatusAwaitingSelection
}
