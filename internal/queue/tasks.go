package queue

import (
	"encoding/json"
	"fmt"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/label"

	"github.com/hibiken/asynq"
)

const (
	// TaskLabelPrint 标签打印任务
	TaskLabelPrint = constants.TaskLabelPrint
)

// LabelPrintPayload 标签打印任务载荷
type LabelPrintPayload struct {
	StoreID uint        `json:"store_id"`
	Label   label.Label `json:"label"`
}

// NewLabelPrintTask 创建标签打印任务
func NewLabelPrintTask(payload LabelPrintPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLabelPrint, body), nil
}

// ParseLabelPrintPayload 解析标签打印任务载荷
func ParseLabelPrintPayload(task *asynq.Task) (LabelPrintPayload, error) {
	var payload LabelPrintPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
