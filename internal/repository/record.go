package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jarednogo/rustsgf/internal/bootstrap"
	"github.com/jarednogo/rustsgf/internal/domain/record"
	ownErrors "github.com/jarednogo/rustsgf/internal/errors"
)

type RecordRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewRecordRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *RecordRepository {
	return &RecordRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

// GenerateRecordKeys выдаёт секретный ключ (uuid) и короткий публичный
// код, уникальный среди сохранённых записей.
func (r *RecordRepository) GenerateRecordKeys(ctx context.Context) (recordKeySecret string, recordKeyPublic string) {
	recordKeySecret = uuid.New().String()
	for {
		recordKeyPublic = generateHash(recordKeySecret)

		if r.CheckPublicKeyIsUniq(ctx, recordKeyPublic) {
			return recordKeySecret, recordKeyPublic
		}
		recordKeySecret = uuid.New().String()
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (r *RecordRepository) CheckPublicKeyIsUniq(ctx context.Context, recordKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := r.mongo.Collection("records")
	filter := bson.M{
		"record_key_public": recordKeyPublic,
	}
	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (r *RecordRepository) PutRecordToMongo(ctx context.Context, rec record.Record) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection("records")

	_, err := collection.InsertOne(ctx, rec)
	if err != nil {
		r.log.Error("failed to insert record", zap.Error(err))
		return false
	}
	return true
}

func (r *RecordRepository) GetRecordByPublicKey(ctx context.Context, recordKeyPublic string) (record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection("records")
	filter := bson.M{
		"record_key_public": recordKeyPublic,
	}

	var rec record.Record
	err := collection.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record.Record{}, ownErrors.ErrRecordNotFound
	}
	if err != nil {
		return record.Record{}, err
	}
	return rec, nil
}

// SaveSGFToRedis stores the canonical record text under its secret key.
func (r *RecordRepository) SaveSGFToRedis(key string, sgfText string) error {
	return r.redis.Set(context.Background(), key, sgfText, 0).Err()
}

func (r *RecordRepository) LoadSGFFromRedis(key string) (string, error) {
	v, err := r.redis.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ownErrors.ErrRecordNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// GetArchive возвращает страницу архива, новые записи первыми.
func (r *RecordRepository) GetArchive(ctx context.Context, pageNum int) (*record.ArchivePage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := int64(r.cfg.PageLimitRecords)
	if limit <= 0 {
		limit = 20
	}
	if pageNum < 1 {
		pageNum = 1
	}

	collection := r.mongo.Collection("records")

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(pageNum-1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]record.Record, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return &record.ArchivePage{
		Records: records,
		Page:    pageNum,
		Total:   total,
	}, nil
}
