package record

import (
	"context"
	"strings"
	"time"

	"github.com/jarednogo/rustsgf/internal/domain/record"
	"github.com/jarednogo/rustsgf/internal/domain/sgf"
	"github.com/jarednogo/rustsgf/internal/errors"
)

// DefaultRedactKeys — свойства с именами игроков, вырезаются по умолчанию.
var DefaultRedactKeys = []string{"PB", "PW"}

type RecordStore interface {
	GenerateRecordKeys(ctx context.Context) (recordKeySecret string, recordKeyPublic string)
	PutRecordToMongo(ctx context.Context, rec record.Record) bool
	GetRecordByPublicKey(ctx context.Context, recordKeyPublic string) (record.Record, error)
	SaveSGFToRedis(key string, sgfText string) error
	LoadSGFFromRedis(key string) (string, error)
	GetArchive(ctx context.Context, pageNum int) (*record.ArchivePage, error)
}

type RecordUseCase struct {
	store RecordStore
}

func NewRecordUseCase(store RecordStore) *RecordUseCase {
	return &RecordUseCase{store: store}
}

// ParseRecord прогоняет текст через парсер и возвращает дерево.
func (u *RecordUseCase) ParseRecord(text string) (*sgf.Collection, error) {
	return sgf.Parse(text)
}

// SummarizeRecord parses the text and reports its canonical form together
// with the shape of the tree.
func (u *RecordUseCase) SummarizeRecord(text string) (*record.ParseSummary, error) {
	coll, err := sgf.Parse(text)
	if err != nil {
		return nil, err
	}
	return &record.ParseSummary{
		Canonical:  coll.String(),
		GameCount:  len(coll.GameTrees),
		NodeCount:  coll.CountNodes(),
		Properties: coll.CountProperties(),
	}, nil
}

// CanonicalizeRecord returns the whitespace-free structural rendering.
func (u *RecordUseCase) CanonicalizeRecord(text string) (string, error) {
	coll, err := sgf.Parse(text)
	if err != nil {
		return "", err
	}
	return coll.String(), nil
}

// RedactRecord blanks out every value of the given property keys. With no
// keys it strips the player names.
func (u *RecordUseCase) RedactRecord(text string, keys ...string) (string, error) {
	coll, err := sgf.Parse(text)
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		keys = DefaultRedactKeys
	}
	for _, key := range keys {
		coll = coll.StripKey(key)
	}
	return coll.String(), nil
}

// CreateRecord validates the text, stores the canonical form in Redis under
// the secret key and archives root-node metadata in Mongo.
func (u *RecordUseCase) CreateRecord(ctx context.Context, text string) (rec record.Record, err error) {
	if strings.TrimSpace(text) == "" {
		return record.Record{}, errors.ErrEmptyRecord
	}

	coll, err := sgf.Parse(text)
	if err != nil {
		return record.Record{}, err
	}

	secretKey, publicKey := u.store.GenerateRecordKeys(ctx)
	canonical := coll.String()

	rec = record.Record{
		RecordKeySecret: secretKey,
		RecordKeyPublic: publicKey,
		GameCount:       len(coll.GameTrees),
		NodeCount:       coll.CountNodes(),
		Sgf:             canonical,
		CreatedAt:       time.Now(),
	}
	rec.PlayerBlack, _ = coll.RootProperty("PB")
	rec.PlayerWhite, _ = coll.RootProperty("PW")
	rec.Date, _ = coll.RootProperty("DT")
	rec.Result, _ = coll.RootProperty("RE")

	if err = u.store.SaveSGFToRedis(secretKey, canonical); err != nil {
		return record.Record{}, err
	}

	if ok := u.store.PutRecordToMongo(ctx, rec); !ok {
		return record.Record{}, errors.ErrStoreRecordFailed
	}

	return rec, nil
}

// GetRecordByPublicKey возвращает метаданные вместе с SGF-текстом.
func (u *RecordUseCase) GetRecordByPublicKey(ctx context.Context, publicKey string) (record.Record, error) {
	rec, err := u.store.GetRecordByPublicKey(ctx, publicKey)
	if err != nil {
		return record.Record{}, err
	}

	sgfText, err := u.store.LoadSGFFromRedis(rec.RecordKeySecret)
	if err != nil {
		return record.Record{}, err
	}
	rec.Sgf = sgfText

	return rec, nil
}

func (u *RecordUseCase) GetArchive(ctx context.Context, pageNum int) (*record.ArchivePage, error) {
	return u.store.GetArchive(ctx, pageNum)
}
