package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/foh/internal/counter"
	"github.com/aquamarinepk/aqm"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketRepo is the Mongo-backed counter-ticket tracking store.
type TicketRepo struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
	logger     aqm.Logger
	config     *aqm.Config
}

func NewTicketRepo(config *aqm.Config, logger aqm.Logger) *TicketRepo {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &TicketRepo{
		logger: logger,
		config: config,
	}
}

func (r *TicketRepo) Start(ctx context.Context) error {
	mongoURL, _ := r.config.GetString("db.mongo.url")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	dbName, _ := r.config.GetString("db.mongo.name")
	if dbName == "" {
		dbName = "foh"
	}

	clientOptions := options.Client().ApplyURI(mongoURL).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)
	r.collection = r.db.Collection("counter_tickets")

	statusIndexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, statusIndexModel); err != nil {
		return fmt.Errorf("cannot create status index: %w", err)
	}

	serviceIndexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "service", Value: 1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, serviceIndexModel); err != nil {
		return fmt.Errorf("cannot create service index: %w", err)
	}

	r.logger.Infof("Connected to MongoDB: %s, database: %s, collection: counter_tickets", mongoURL, dbName)
	return nil
}

func (r *TicketRepo) GetDatabase() *mongo.Database {
	return r.db
}

func (r *TicketRepo) Stop(ctx context.Context) error {
	if r.client != nil {
		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		r.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

// Save upserts the ticket snapshot; the board writes updated snapshots back
// after every status transition.
func (r *TicketRepo) Save(ctx context.Context, t *counter.Ticket) error {
	t.UpdatedAt = time.Now()
	if t.ModelVersion == 0 {
		t.ModelVersion = 1
	}

	filter := bson.M{"_id": t.Token}
	update := bson.M{"$set": t}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("cannot save ticket: %w", err)
	}
	return nil
}

func (r *TicketRepo) FindByToken(ctx context.Context, token string) (*counter.Ticket, error) {
	var ticket counter.Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": token}).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("ticket not found")
		}
		return nil, fmt.Errorf("cannot find ticket: %w", err)
	}
	return &ticket, nil
}

func (r *TicketRepo) List(ctx context.Context, filter counter.TicketFilter) ([]counter.Ticket, error) {
	query := bson.M{}

	if filter.Service != nil {
		query["service"] = *filter.Service
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		findOptions.SetSkip(int64(filter.Offset))
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []counter.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("cannot decode tickets: %w", err)
	}
	return tickets, nil
}
