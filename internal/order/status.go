package order

// Status is the unified order status exposed to the boards. Table orders
// derive it from their waves, counter tickets map their tracked status onto it.
type Status string

const (
	StatusSent      Status = "sent"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusServed    Status = "served"
	StatusClosed    Status = "closed"
	StatusVoided    Status = "voided"
	StatusRefunded  Status = "refunded"
)

// DeriveTableStatus computes a seated table's order status from its wave
// statuses plus the table's billing flag. The walk mirrors the wave precedence
// one level up: readiness first, then active cooking, then a wave in the
// kitchen, then completed courses.
//
// A fired wave beats served courses: a table with wave 1 served and wave 2
// fired reads as "sent", because the active wave is what the kitchen and the
// floor care about. A held wave alongside served courses reads as "served":
// guests are mid-meal with the next course not yet called.
//
// Waves with no countable items do not vote; a table with no waves at all is
// "sent" while open, "closed" once billing.
func DeriveTableStatus(waves []Wave, billing bool) Status {
	var anyReady, anyCooking, anyFired, anyHeld, anyServed bool
	for _, w := range waves {
		if !w.hasActiveItems() {
			continue
		}
		switch w.Status {
		case WaveReady:
			anyReady = true
		case WaveCooking:
			anyCooking = true
		case WaveFired:
			anyFired = true
		case WaveHeld:
			anyHeld = true
		case WaveServed:
			anyServed = true
		}
	}

	switch {
	case anyReady:
		return StatusReady
	case anyCooking:
		return StatusPreparing
	case anyFired:
		return StatusSent
	case anyHeld && anyServed:
		return StatusServed
	case anyServed:
		if billing {
			return StatusClosed
		}
		return StatusServed
	case anyHeld:
		return StatusSent
	default:
		if billing {
			return StatusClosed
		}
		return StatusSent
	}
}

func (w Wave) hasActiveItems() bool {
	for i := range w.Items {
		if w.Items[i].Active() {
			return true
		}
	}
	return false
}
