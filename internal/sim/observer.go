package sim

import "log"

// LogObserver writes every event through the standard logger.
type LogObserver struct {
	Logger *log.Logger
}

func (o LogObserver) OnEvent(e Event) {
	if o.Logger != nil {
		o.Logger.Printf("clothsim: %s", e)
		return
	}
	log.Printf("clothsim: %s", e)
}
