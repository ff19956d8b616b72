package fdtd_test

import "context"

func ctx() context.Context { return context.Background() }

func cancellable() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}
