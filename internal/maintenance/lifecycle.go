package maintenance

import "fmt"

// AllowTransition 状态机转移表。原始系统对状态流转不设限制，
// 任意两个已知状态之间都可以切换（含保持原状态）；表显式写出，
// 后续要收紧只改这一处。
var AllowTransition = map[Status][]Status{
	StatusPending:    {StatusPending, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusPending, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusPending, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusCancelled:  {StatusPending, StatusInProgress, StatusCancelled, StatusCompleted},
}

// CanTransition 判断 from 到 to 是否允许。未知状态一律拒绝。
func CanTransition(from, to Status) bool {
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition 执行状态切换。完成时间戳由 BeforeSave 统一盖，这里只改状态。
func ApplyTransition(s *Service, to Status) error {
	if !CanTransition(s.Status, to) {
		return fmt.Errorf("cannot transition service from %s to %s", s.Status, to)
	}
	s.Status = to
	return nil
}
