package cache

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// feedRow is the persisted form of one feed item
type feedRow struct {
	Portal      string `gorm:"primaryKey"`
	ItemID      string `gorm:"primaryKey"`
	Type        string
	Tag         string
	TagColor    string
	Title       string
	Description string
	Time        string
	CreatedAt   string
	LinkURL     string
	Position    int
	FetchedAt   time.Time
}

// notificationRow is the persisted form of one course notification
type notificationRow struct {
	Portal      string `gorm:"primaryKey"`
	ID          int    `gorm:"primaryKey"`
	Title       string
	Content     string
	Course      string
	Author      string
	Location    string
	IsImportant bool
	Time        string
	CreatedAt   string
	Position    int
	FetchedAt   time.Time
}

// Cache is a local read cache of portal listings so feed and notification
// commands can fall back to the last fetched data when the portal is
// unreachable. It is an optimization only: every failure here is
// non-fatal to the command using it.
type Cache struct {
	db *gorm.DB
}

// Open opens (creating if needed) the cache database at the given path
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(&feedRow{}, &notificationRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// PutFeed replaces the cached feed for a portal with the given items
func (c *Cache) PutFeed(portal string, items []client.FeedItem) error {
	now := time.Now()

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portal = ?", portal).Delete(&feedRow{}).Error; err != nil {
			return err
		}

		for i, item := range items {
			row := feedRow{
				Portal:      portal,
				ItemID:      item.ID,
				Type:        item.Type,
				Tag:         item.Tag,
				TagColor:    item.TagColor,
				Title:       item.Title,
				Description: item.Description,
				Time:        item.Time,
				CreatedAt:   item.CreatedAt,
				LinkURL:     item.LinkURL,
				Position:    i,
				FetchedAt:   now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Feed returns the cached feed for a portal in fetch order, with the time
// it was fetched. An empty cache returns no rows and a zero time.
func (c *Cache) Feed(portal string, limit int) ([]client.FeedItem, time.Time, error) {
	var rows []feedRow
	q := c.db.Where("portal = ?", portal).Order("position asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}

	items := make([]client.FeedItem, 0, len(rows))
	var fetchedAt time.Time
	for _, row := range rows {
		fetchedAt = row.FetchedAt
		items = append(items, client.FeedItem{
			ID:          row.ItemID,
			Type:        row.Type,
			Tag:         row.Tag,
			TagColor:    row.TagColor,
			Title:       row.Title,
			Description: row.Description,
			Time:        row.Time,
			CreatedAt:   row.CreatedAt,
			LinkURL:     row.LinkURL,
		})
	}
	return items, fetchedAt, nil
}

// PutNotifications replaces the cached notifications for a portal
func (c *Cache) PutNotifications(portal string, items []client.Notification) error {
	now := time.Now()

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portal = ?", portal).Delete(&notificationRow{}).Error; err != nil {
			return err
		}

		for i, item := range items {
			row := notificationRow{
				Portal:      portal,
				ID:          item.ID,
				Title:       item.Title,
				Content:     item.Content,
				Course:      item.Course,
				Author:      item.Author,
				Location:    item.Location,
				IsImportant: item.IsImportant,
				Time:        item.Time,
				CreatedAt:   item.CreatedAt,
				Position:    i,
				FetchedAt:   now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Notifications returns the cached notifications for a portal in fetch order
func (c *Cache) Notifications(portal string, limit int) ([]client.Notification, time.Time, error) {
	var rows []notificationRow
	q := c.db.Where("portal = ?", portal).Order("position asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}

	items := make([]client.Notification, 0, len(rows))
	var fetchedAt time.Time
	for _, row := range rows {
		fetchedAt = row.FetchedAt
		items = append(items, client.Notification{
			ID:          row.ID,
			Title:       row.Title,
			Content:     row.Content,
			Course:      row.Course,
			Author:      row.Author,
			Location:    row.Location,
			IsImportant: row.IsImportant,
			Time:        row.Time,
			CreatedAt:   row.CreatedAt,
		})
	}
	return items, fetchedAt, nil
}
