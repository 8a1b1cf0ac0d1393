package datarecording

import (
	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/hooking"
	"github.com/sarchlab/partwright/scheduling"
)

// The tables the Tracer writes.
const (
	TaskTable      = "task"
	RecomputeTable = "recompute"
)

// TaskEntry is a row of the task table.
type TaskEntry struct {
	TaskID     string
	WorkerID   string
	StartNs    int64
	EndNs      int64
	DurationNs int64
	Error      string
}

// RecomputeEntry is a row of the recompute table.
type RecomputeEntry struct {
	ID         string
	Component  string
	Revision   uint64
	StartNs    int64
	EndNs      int64
	DurationNs int64
	Error      string
}

// A Tracer is a hook that records completed tasks and recomputes. Attach it
// to a scheduling.Pool, to components, or both.
type Tracer struct {
	recorder DataRecorder
}

// NewTracer creates the trace tables in recorder.
func NewTracer(recorder DataRecorder) *Tracer {
	recorder.CreateTable(TaskTable, TaskEntry{})
	recorder.CreateTable(RecomputeTable, RecomputeEntry{})

	return &Tracer{recorder: recorder}
}

// Func records the end of a task or of a recompute.
func (t *Tracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case scheduling.HookPosTaskEnd:
		info := ctx.Item.(*scheduling.TaskInfo)
		t.recorder.InsertData(TaskTable, TaskEntry{
			TaskID:     info.TaskID,
			WorkerID:   info.WorkerID,
			StartNs:    info.Start.UnixNano(),
			EndNs:      info.End.UnixNano(),
			DurationNs: info.End.Sub(info.Start).Nanoseconds(),
			Error:      errString(info.Err),
		})
	case component.HookPosRecomputeEnd:
		info := ctx.Item.(*component.RecomputeInfo)
		t.recorder.InsertData(RecomputeTable, RecomputeEntry{
			ID:         info.ID,
			Component:  info.Component,
			Revision:   info.Revision,
			StartNs:    info.Start.UnixNano(),
			EndNs:      info.End.UnixNano(),
			DurationNs: info.End.Sub(info.Start).Nanoseconds(),
			Error:      errString(info.Err),
		})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

var _ hooking.Hook = (*Tracer)(nil)
