package internal

import (
	"abcpay/config"
	"abcpay/entity"
	"abcpay/services"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLog     = "payment_log"
	collectionResults = "payment_results"
)

// MongoDB is the audit store: a persistent log trail and the normalized
// payment results keyed by order number. Connections are opened per
// operation and closed when it completes.
type MongoDB struct {
	ctx              context.Context
	clientOptions    *options.ClientOptions
	database         string
	logRecordsNumber int64
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	db := &MongoDB{
		ctx:              context.Background(),
		clientOptions:    clientOptions,
		database:         conf.Mongo.Database,
		logRecordsNumber: conf.LogRecords,
	}

	connection, err := db.connect()
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	defer db.disconnect(connection)
	if err = connection.Ping(db.ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return db, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	return mongo.Connect(m.ctx, m.clientOptions)
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionLog)
	if _, err = collection.InsertOne(m.ctx, data); err != nil {
		return err
	}
	return m.trimLogRecords(collection)
}

// trimLogRecords keeps the log trail within the configured record cap.
func (m *MongoDB) trimLogRecords(collection *mongo.Collection) error {
	if m.logRecordsNumber <= 0 {
		return nil
	}
	count, err := collection.CountDocuments(m.ctx, bson.D{})
	if err != nil {
		return err
	}
	excess := count - m.logRecordsNumber
	if excess <= 0 {
		return nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}}).SetLimit(excess).SetProjection(bson.D{{Key: "_id", Value: 1}})
	cursor, err := collection.Find(m.ctx, bson.D{}, opts)
	if err != nil {
		return err
	}
	var oldest []bson.M
	if err = cursor.All(m.ctx, &oldest); err != nil {
		return err
	}
	ids := make([]interface{}, 0, len(oldest))
	for _, doc := range oldest {
		ids = append(ids, doc["_id"])
	}
	if len(ids) == 0 {
		return nil
	}
	_, err = collection.DeleteMany(m.ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	return err
}

// SavePaymentResult upserts the normalized result by order number; results
// without an order number are inserted as-is.
func (m *MongoDB) SavePaymentResult(ctx context.Context, result *entity.CanonicalResult) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionResults)
	if result.OrderNo == "" {
		_, err = collection.InsertOne(ctx, result)
		return err
	}
	filter := bson.D{{Key: "order_no", Value: result.OrderNo}}
	opts := options.Replace().SetUpsert(true)
	_, err = collection.ReplaceOne(ctx, filter, result, opts)
	return err
}

func (m *MongoDB) GetPaymentResult(ctx context.Context, orderNo string) (*entity.CanonicalResult, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var result entity.CanonicalResult
	collection := connection.Database(m.database).Collection(collectionResults)
	filter := bson.D{{Key: "order_no", Value: orderNo}}
	if err = collection.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
