package service

import "github.com/ziptechlabs/cohort-server-go/internal/model"

// RealtimeNotifier is the service layer's view of the realtime relay: fire
// and forget broadcasts into a cohort room. Implemented by realtime.Relay;
// mocked in tests.
type RealtimeNotifier interface {
	NotifyMessage(cohortID string, msg *model.Message)
	NotifySession(cohortID string, active bool)
}
