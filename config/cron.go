package config

// Names of the built-in cron jobs. Schedules live in AppConfig; an empty schedule disables the job.
const (
	CronCatalogWarm    = "catalogwarm"
	CronCatalogReindex = "catalogreindex"
)

// CronSchedules maps built-in job names to their schedule.
func CronSchedules() map[string]string {
	return map[string]string{
		CronCatalogWarm:    AppConfig.CatalogWarmSchedule,
		CronCatalogReindex: AppConfig.CatalogReindexSchedule,
	}
}
