package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"popup-registration-platform/internal/config"
	"popup-registration-platform/internal/database"
	"popup-registration-platform/internal/models"
	"popup-registration-platform/internal/repositories"
)

func main() {
	var (
		slug  = flag.String("slug", "summer-popup", "Slug of the popup to seed")
		name  = flag.String("name", "Summer Popup", "Display name of the popup")
		start = flag.String("start", "2026-06-01", "First day of the popup (YYYY-MM-DD)")
	)
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("Invalid -start date: %v", err)
	}

	fmt.Printf("🌱 Seeding passes for %s\n", *slug)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	ctx := context.Background()

	popupRepo := repositories.NewPopupRepository(db.DB)
	passRepo := repositories.NewPassRepository(db.DB)
	groupRepo := repositories.NewGroupRepository(db.DB)
	couponRepo := repositories.NewCouponRepository(db.DB)
	attendeeRepo := repositories.NewAttendeeRepository(db.DB)

	if existing, err := popupRepo.GetBySlug(ctx, *slug); err == nil {
		fmt.Printf("✅ Popup %s already exists (id %d), nothing to do\n", existing.Slug, existing.ID)
		return
	} else if !errors.Is(err, models.ErrPopupNotFound) {
		log.Fatal("Failed to look up popup:", err)
	}

	endDate := startDate.AddDate(0, 0, 29)
	popup, err := popupRepo.Create(ctx, &models.Popup{
		Name:      *name,
		Slug:      *slug,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Fatal("Failed to create popup:", err)
	}
	fmt.Printf("✅ Created popup: %s (id %d)\n", popup.Name, popup.ID)

	for _, pass := range catalog(popup.ID, startDate, endDate) {
		created, err := passRepo.Create(ctx, pass)
		if err != nil {
			log.Fatalf("Failed to create pass %q: %v", pass.Name, err)
		}
		fmt.Printf("   🎟  %-22s %-6s %8.2f\n", created.Name, created.Tier, float64(created.Price)/100)
	}

	group, err := groupRepo.Create(ctx, &models.Group{
		PopupID:            popup.ID,
		Name:               "Builders",
		DiscountPercentage: 20,
	})
	if err != nil {
		log.Fatal("Failed to create group:", err)
	}
	fmt.Printf("✅ Created group: %s (%s%% off, id %d)\n", group.Name, models.FormatPercentage(group.DiscountPercentage), group.ID)

	for _, attendee := range []*models.Attendee{
		{PopupID: popup.ID, GroupID: &group.ID, Name: "Demo Builder", Email: "builder@example.com", Category: models.CategoryMain},
		{PopupID: popup.ID, GroupID: &group.ID, Name: "Demo Kid", Category: models.CategoryKid},
	} {
		created, err := attendeeRepo.Create(ctx, attendee)
		if err != nil {
			log.Fatalf("Failed to create attendee %q: %v", attendee.Name, err)
		}
		fmt.Printf("   👤 %-22s %-6s id %d\n", created.Name, created.Category, created.ID)
	}

	maxUses := 100
	if _, err := couponRepo.Create(ctx, &models.Coupon{
		PopupID:            popup.ID,
		Code:               "EARLYBIRD",
		DiscountPercentage: 10,
		IsActive:           true,
		MaxUses:            &maxUses,
		EndDate:            &startDate,
	}); err != nil {
		log.Fatal("Failed to create coupon:", err)
	}
	fmt.Println("✅ Created coupon: EARLYBIRD (10% off until opening day)")

	// Popup IDs restart after a database reset, so drop any catalog cached under this one
	if cfg.Redis.URL != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			log.Printf("Skipping catalog cache invalidation: %v", err)
		} else {
			defer redisClient.Close()
			cache := repositories.NewCachedPassRepository(passRepo, redisClient, cfg.Redis.CacheTTL)
			if err := cache.Invalidate(ctx, popup.ID); err != nil {
				log.Printf("Failed to invalidate catalog cache: %v", err)
			} else {
				fmt.Println("🧹 Cleared cached catalog")
			}
		}
	}

	fmt.Println("🎉 Seeding completed")
}

func catalog(popupID int, start, end time.Time) []*models.Pass {
	day := func(offset int) *time.Time {
		t := start.AddDate(0, 0, offset)
		return &t
	}
	monthCompare := 36000

	passes := []*models.Pass{
		{PopupID: popupID, Name: "Month Pass", Tier: models.TierMonth, Price: 30000, ComparePrice: &monthCompare, StartDate: &start, EndDate: &end},
	}
	for week := 0; week < 4; week++ {
		passes = append(passes, &models.Pass{
			PopupID:   popupID,
			Name:      fmt.Sprintf("Week %d", week+1),
			Tier:      models.TierWeek,
			Price:     10000,
			StartDate: day(week * 7),
			EndDate:   day(week*7 + 6),
		})
	}
	passes = append(passes,
		&models.Pass{
			PopupID:            popupID,
			Name:               "Kids Week 1",
			Tier:               models.TierWeek,
			AttendeeCategories: []models.AttendeeCategory{models.CategoryTeen, models.CategoryKid},
			Price:              4000,
			StartDate:          day(0),
			EndDate:            day(6),
		},
		&models.Pass{PopupID: popupID, Name: "Day Pass", Tier: models.TierDay, Price: 5000, StartDate: &start, EndDate: &end},
		&models.Pass{PopupID: popupID, Name: "Patron", Tier: models.TierPatron, Price: 100000},
	)
	return passes
}
