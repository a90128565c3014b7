package bot

import "runtime/debug"

// withRecovery keeps one broken update or console action from taking the
// whole bot down.
func (b *Bot) withRecovery(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
		b.logger.Error().
			Interface("panic", r).
			Bytes("stack", debug.Stack()).
			Msg("recovered from panic")
	}()
	fn()
}
