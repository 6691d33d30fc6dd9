package repository

import (
	"context"
	"database/sql"
	"strconv"
)

// DiagnosticInfo is the read-only server identity snapshot returned by
// Diagnose. Field availability varies by engine; unavailable fields are
// empty or zero.
type DiagnosticInfo struct {
	Engine        string `json:"engine"`
	Version       string `json:"version"`
	Database      string `json:"database"`
	Schema        string `json:"schema"`
	Host          string `json:"host"`
	Port          int64  `json:"port"`
	User          string `json:"user"`
	SessionID     string `json:"session_id"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	UptimeKind    string `json:"uptime_kind"`
}

// Uptime classification boundaries, in seconds.
const (
	uptimeHour = 60 * 60
	uptimeDay  = 24 * uptimeHour
	uptimeWeek = 7 * uptimeDay
)

// classifyUptime interprets server uptime: a very young server is probably a
// container or other ephemeral instance, a long-lived one a persistent or
// local installation.
func classifyUptime(seconds int64) string {
	switch {
	case seconds < uptimeHour:
		return "likely containerized/ephemeral (up less than an hour)"
	case seconds < uptimeDay:
		return "recently started (up less than a day)"
	case seconds < uptimeWeek:
		return "stable (up less than a week)"
	default:
		return "likely a persistent/local instance (up a week or more)"
	}
}

// Diagnose runs the engine's identity query and interprets the uptime.
func (r *Repository) Diagnose(ctx context.Context) (DiagnosticInfo, error) {
	db, err := r.open(ctx)
	if err != nil {
		return DiagnosticInfo{}, err
	}
	defer db.Close()

	var (
		version, database, schemaName, host sql.NullString
		port                                sql.NullInt64
		user, session, uptime               sql.NullString
	)
	err = db.QueryRowContext(ctx, r.dialect.DiagnosticSQL).Scan(
		&version, &database, &schemaName, &host, &port, &user, &session, &uptime,
	)
	if err != nil {
		return DiagnosticInfo{}, &ProviderError{Err: err}
	}

	// MySQL reports uptime as a status string; the other engines as an
	// integer the driver stringifies on scan.
	seconds, _ := strconv.ParseInt(uptime.String, 10, 64)

	return DiagnosticInfo{
		Engine:        r.dialect.Engine,
		Version:       version.String,
		Database:      database.String,
		Schema:        schemaName.String,
		Host:          host.String,
		Port:          port.Int64,
		User:          user.String,
		SessionID:     session.String,
		UptimeSeconds: seconds,
		UptimeKind:    classifyUptime(seconds),
	}, nil
}
