package postgres

import "context"

// HealthCheck probes the slot registry database. It reads qr_slots rather
// than running a bare ping, so a missing schema reports unhealthy too.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, "SELECT 1 FROM qr_slots LIMIT 1")
	return err
}

func (h *HealthCheck) Name() string { return "slot_registry_postgres" }

// Critical is always true: every allocation goes through this database.
func (h *HealthCheck) Critical() bool { return true }
