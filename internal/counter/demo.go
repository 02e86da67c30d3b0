package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const counterDemoSeedApplication = "foh_counter_demo"

// ApplyDemoSeeds creates a handful of counter tickets in different stages of
// service so the board has live-looking data on a fresh install.
func ApplyDemoSeeds(ctx context.Context, store TicketStore, db *mongo.Database, logger aqm.Logger) error {
	if db == nil {
		return errors.New("database is required for demo seeding")
	}

	seeds := []seed.Seed{
		{
			ID:          "demo_counter_tickets_v1",
			Description: "Create demo pickup and walk-in tickets across service stages",
			Run: func(ctx context.Context) error {
				return seedDemoTickets(ctx, store, logger)
			},
		},
	}

	tracker := seed.NewMongoTracker(db)

	logger.Info("Applying demo counter ticket seeds")
	if err := seed.Apply(ctx, tracker, seeds, counterDemoSeedApplication); err != nil {
		return err
	}
	logger.Info("Demo counter ticket seeds applied successfully")
	return nil
}

func seedDemoTickets(ctx context.Context, store TicketStore, logger aqm.Logger) error {
	now := time.Now()

	demos := []*Ticket{
		{
			Token:    "PK-2041",
			Service:  ServicePickup,
			Status:   TicketPreparing,
			Customer: "Dana",
			Items: []TicketItem{
				{Name: "Smash Burger", Price: 15, Quantity: 2},
				{Name: "Fries", Price: 6, Quantity: 1},
			},
			CreatedAt: now.Add(-9 * time.Minute),
			UpdatedAt: now.Add(-4 * time.Minute),
		},
		{
			Token:    "PK-2042",
			Service:  ServicePickup,
			Status:   TicketReady,
			Customer: "Marco",
			Note:     "no cutlery",
			Items: []TicketItem{
				{Name: "Caesar Salad", Price: 13, Quantity: 1},
			},
			CreatedAt: now.Add(-14 * time.Minute),
			UpdatedAt: now.Add(-1 * time.Minute),
		},
		{
			Token:    "DI-0317",
			Service:  ServiceDineIn,
			Status:   TicketSent,
			Customer: "Walk-in",
			Items: []TicketItem{
				{Name: "Margherita", Price: 17, Quantity: 1},
				{Name: "Lemonade", Price: 5, Quantity: 2},
			},
			CreatedAt: now.Add(-2 * time.Minute),
			UpdatedAt: now.Add(-2 * time.Minute),
		},
		{
			Token:    "DI-0312",
			Service:  ServiceDineIn,
			Status:   TicketPickedUp,
			Customer: "Walk-in",
			Items: []TicketItem{
				{Name: "Carbonara", Price: 19, Quantity: 1},
			},
			CreatedAt: now.Add(-48 * time.Minute),
			UpdatedAt: now.Add(-20 * time.Minute),
		},
	}

	for _, t := range demos {
		if err := store.Save(ctx, t); err != nil {
			return fmt.Errorf("save demo ticket %s: %w", t.Token, err)
		}
	}

	logger.Info("Demo counter tickets created", "count", len(demos))
	return nil
}
