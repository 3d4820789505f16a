package notifier

import "context"

// runWithContext выполняет fn и возвращает управление не позже отмены ctx.
// gomail и twilio не принимают контекст, поэтому зависший вызов дорабатывает в фоне,
// а результат отбрасывается.
func runWithContext(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
