package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/emailing"
)

const batchSize = 100

func main() {
	slog.Info("Starting link reminder job")
	start := time.Now()

	for _, instanceID := range conf.InstanceIDs {
		slog.Debug("Start handling links for instance", slog.String("instanceID", instanceID))

		refreshAssessmentStats(instanceID)

		if conf.ReminderConfig.SendReminders {
			sendReminders(instanceID)
		}
	}

	slog.Info("Link reminder job completed", slog.String("duration", time.Since(start).String()))
}

// refreshAssessmentStats recomputes the per-assessment link counters that the
// dashboards read.
func refreshAssessmentStats(instanceID string) {
	page := int64(1)
	for {
		assessments, pagination, err := assessmentDBService.GetAssessments(instanceID, bson.M{}, bson.M{"createdAt": 1}, page, batchSize)
		if err != nil {
			slog.Error("Failed to get assessments", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
			return
		}

		for _, item := range assessments {
			stats := types.AssessmentStats{}
			counters := []struct {
				target *int64
				filter bson.M
			}{
				{&stats.LinkCount, bson.M{"assessmentID": item.ID}},
				{&stats.YetToStart, bson.M{"assessmentID": item.ID, "status": types.LINK_STATUS_YET_TO_START}},
				{&stats.InProgress, bson.M{"assessmentID": item.ID, "status": types.LINK_STATUS_IN_PROGRESS}},
				{&stats.SubmittedCount, bson.M{"assessmentID": item.ID, "status": types.LINK_STATUS_SUBMITTED}},
			}
			failed := false
			for _, counter := range counters {
				count, err := assessmentDBService.GetLinksCount(instanceID, counter.filter)
				if err != nil {
					slog.Error("Failed to count links", slog.String("error", err.Error()), slog.String("instanceID", instanceID), slog.String("assessmentID", item.ID.Hex()))
					failed = true
					break
				}
				*counter.target = count
			}
			if failed {
				continue
			}

			if err := assessmentDBService.UpdateAssessmentStats(instanceID, item.ID, stats); err != nil {
				slog.Error("Failed to update assessment stats", slog.String("error", err.Error()), slog.String("instanceID", instanceID), slog.String("assessmentID", item.ID.Hex()))
			}
		}

		if pagination == nil || page >= pagination.TotalPages {
			break
		}
		page++
	}
}

// sendReminders emails customers whose links are still open after the
// configured waiting period.
func sendReminders(instanceID string) {
	cutoff := time.Now().Add(-conf.ReminderConfig.RemindAfter).Unix()
	filter := bson.M{
		"status":    bson.M{"$ne": types.LINK_STATUS_SUBMITTED},
		"createdAt": bson.M{"$lt": cutoff},
	}

	sentCount := 0
	page := int64(1)
	for {
		links, pagination, err := assessmentDBService.GetLinks(instanceID, filter, bson.M{"createdAt": 1}, page, batchSize)
		if err != nil {
			slog.Error("Failed to get links", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
			return
		}

		for _, link := range links {
			if err := remindCustomer(instanceID, link); err != nil {
				slog.Error("Failed to send reminder", slog.String("error", err.Error()), slog.String("instanceID", instanceID), slog.String("linkID", link.ID.Hex()))
				continue
			}
			sentCount++
		}

		if pagination == nil || page >= pagination.TotalPages {
			break
		}
		page++
	}

	slog.Info("Reminders sent", slog.String("instanceID", instanceID), slog.Int("count", sentCount))
}

func remindCustomer(instanceID string, link types.AssessmentLink) error {
	customer, err := userDirectoryDBService.GetCustomerByID(instanceID, link.CustomerID.Hex())
	if err != nil {
		return err
	}
	if customer.Email == "" {
		return fmt.Errorf("customer %s has no email address", customer.ID.Hex())
	}

	item, err := assessmentDBService.GetAssessmentByID(instanceID, link.AssessmentID.Hex())
	if err != nil {
		return err
	}

	return emailing.SendAssessmentLinkReminder([]string{customer.Email}, map[string]string{
		"customerName":   customer.Name,
		"assessmentName": item.Name,
		"linkURL":        fmt.Sprintf("%s/assessment/%s", conf.AssessmentConfigs.FormBaseURL, link.Token),
		"progress":       strconv.Itoa(link.ProgressPercent),
	})
}
