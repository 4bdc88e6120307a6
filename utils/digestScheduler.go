package utils

import (
	"log"
	"time"

	"academy/config"
	"academy/database"
	"academy/models"
	"academy/repository"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[DIGEST-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendPendingDigest counts outstanding reviews and mails the admin when
// there is anything to look at.
func sendPendingDigest() {
	db := database.Database.Db

	requests := repository.NewAccessRequestRepo(db)
	pendingRequests, err := requests.CountPending(config.AppConfig.ModuleCap)
	if err != nil {
		logScheduler("Error counting pending access requests: " + err.Error())
		return
	}

	var pendingAccounts int64
	if err := db.Model(&models.User{}).
		Where("role <> ? AND approved = ? AND is_deleted = ?", models.RoleAdmin, false, false).
		Count(&pendingAccounts).Error; err != nil {
		logScheduler("Error counting unapproved accounts: " + err.Error())
		return
	}

	if pendingRequests == 0 && pendingAccounts == 0 {
		logScheduler("Nothing pending, skipping digest for " + now.BeginningOfDay().Format("2006-01-02"))
		return
	}

	go SendPendingDigestEmail(pendingRequests, pendingAccounts)
	logScheduler("Digest queued")
}

// InitializeDigestScheduler starts the daily admin digest at 08:00 server time.
func InitializeDigestScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 8 * * *", sendPendingDigest); err != nil {
		logScheduler("Error scheduling digest: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Digest scheduler started")
	return c
}
