package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Purge removed attachments, daily at 03:00
	CronSchedulePurgeAttachments string `env:"CRON_SCHEDULE_PURGE_ATTACHMENTS" envDefault:"0 0 3 * * *"`
	// Lease name used for leader election between pods
	LeaderLeaseName string `env:"CRON_LEADER_LEASE_NAME" envDefault:"statusstack-cron-leader"`
}
