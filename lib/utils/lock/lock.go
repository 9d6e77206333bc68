package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

// WithDelay выполняет safeCode под блокировкой key, ожидая ее не дольше wait.
// success=false если блокировку получить не удалось
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isLocked := false
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			isLocked = true
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	if isLocked {
		defer lockMap.Delete(key)
		return true, safeCode()
	}
	return false, nil
}

func IssueKey(issueID uint) string {
	return fmt.Sprintf("issue:%d", issueID)
}

func ContractorKey(contractorID uint) string {
	return fmt.Sprintf("contractor:%d", contractorID)
}
