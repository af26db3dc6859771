package config

import "strings"

// GetAuthSkipperPaths returns the /api route paths served without credentials.
func GetAuthSkipperPaths() []string {
	// Read-only storefront catalog is public
	return []string{
		"/api/catalog",
		"/api/catalog/categories",
		"/api/catalog/components",
		"/api/catalog/products/:id",
	}
}

// CronSchedule returns the schedule for a job, overridable with CRON_<NAME>.
func CronSchedule(name, def string) string {
	return GetEnv("CRON_"+strings.ToUpper(name), def)
}
