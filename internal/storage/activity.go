package storage

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/models"
)

// SaveActivity appends one audit row and broadcasts it on the live feed
// channel. The broadcast is best-effort; a Redis failure never fails the
// admin action that produced the row.
func (s *Service) SaveActivity(entry *models.ActivityLog) error {
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("ERROR: Failed to save activity log: %v", err)
		return err
	}

	if s.Redis != nil {
		payload, err := json.Marshal(entry.Entry())
		if err == nil {
			if err := s.Redis.Publish(s.Ctx, config.ActivityChannel, payload).Err(); err != nil {
				log.Printf("WARNING: Failed to publish activity entry: %v", err)
			}
		}
	}
	return nil
}

// ListActivity returns audit rows newest-first, 20 per page, optionally
// filtered by type.
func (s *Service) ListActivity(page int, activityType models.ActivityType) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	q := s.DB.Model(&models.ActivityLog{})
	if activityType != "" {
		q = q.Where("type = ?", activityType)
	}
	if page < 1 {
		page = 1
	}
	err := q.Order("created_at desc").
		Offset((page - 1) * config.ActivityPageSize).
		Limit(config.ActivityPageSize).
		Find(&entries).Error
	if err != nil {
		log.Printf("ERROR: Failed to list activity: %v", err)
		return nil, err
	}
	return entries, nil
}

// SubscribeActivity opens a Redis subscription on the live feed channel.
func (s *Service) SubscribeActivity() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, config.ActivityChannel)
}

const dashboardCacheKey = "dashboard:stats"

func (s *Service) CacheDashboard(payload []byte) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(s.Ctx, dashboardCacheKey, payload, config.DashboardCacheTTL).Err()
}

// GetCachedDashboard returns the cached stats payload, or ErrNotFound on a
// cache miss.
func (s *Service) GetCachedDashboard() ([]byte, error) {
	if s.Redis == nil {
		return nil, ErrNotFound
	}
	payload, err := s.Redis.Get(s.Ctx, dashboardCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
