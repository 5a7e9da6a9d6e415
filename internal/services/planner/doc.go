// Package planner runs schedule generation as a long-lived service.
//
// A cron trigger (default "@daily") regenerates a forward horizon of day
// schedules; config hot reloads trigger an extra regeneration, rate
// limited so rapid file writes collapse into one run. Generated days are
// archived through the storage package.
package planner
