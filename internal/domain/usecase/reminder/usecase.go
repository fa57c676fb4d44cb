package reminder

import "context"

type UseCase interface {
	// DispatchDue notifies every push-enabled user whose morning or evening time is the current
	// minute and who has open todos due today. It returns the number of notifications sent.
	DispatchDue(ctx context.Context) (int, error)
}
