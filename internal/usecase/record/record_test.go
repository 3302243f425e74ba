package record

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarednogo/rustsgf/internal/domain/record"
	"github.com/jarednogo/rustsgf/internal/errors"
)

// fakeStore keeps everything in maps, standing in for Redis and Mongo.
type fakeStore struct {
	nextKey int
	sgf     map[string]string
	records map[string]record.Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sgf:     make(map[string]string),
		records: make(map[string]record.Record),
	}
}

func (f *fakeStore) GenerateRecordKeys(ctx context.Context) (string, string) {
	f.nextKey++
	return fmt.Sprintf("secret-%d", f.nextKey), fmt.Sprintf("%05d", f.nextKey)
}

func (f *fakeStore) PutRecordToMongo(ctx context.Context, rec record.Record) bool {
	f.records[rec.RecordKeyPublic] = rec
	return true
}

func (f *fakeStore) GetRecordByPublicKey(ctx context.Context, publicKey string) (record.Record, error) {
	rec, ok := f.records[publicKey]
	if !ok {
		return record.Record{}, errors.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeStore) SaveSGFToRedis(key string, sgfText string) error {
	f.sgf[key] = sgfText
	return nil
}

func (f *fakeStore) LoadSGFFromRedis(key string) (string, error) {
	text, ok := f.sgf[key]
	if !ok {
		return "", errors.ErrRecordNotFound
	}
	return text, nil
}

func (f *fakeStore) GetArchive(ctx context.Context, pageNum int) (*record.ArchivePage, error) {
	page := &record.ArchivePage{Page: pageNum, Total: int64(len(f.records))}
	for _, rec := range f.records {
		page.Records = append(page.Records, rec)
	}
	return page, nil
}

func TestSummarizeRecord(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	summary, err := uc.SummarizeRecord("(;GM[1](;B[aa];W[ab])(;B[ab];W[ac]))")
	require.NoError(t, err)

	assert.Equal(t, "(;GM[1](;B[aa];W[ab])(;B[ab];W[ac]))", summary.Canonical)
	assert.Equal(t, 1, summary.GameCount)
	assert.Equal(t, 5, summary.NodeCount)
	assert.Equal(t, 2, summary.Properties["B"])
}

func TestSummarizeRecordBadInput(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	_, err := uc.SummarizeRecord("(;gm[1])")
	require.Error(t, err)
}

func TestCanonicalizeRecord(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	out, err := uc.CanonicalizeRecord("( ;GM[1]\n;B[aa] )")
	require.NoError(t, err)
	assert.Equal(t, "(;GM[1];B[aa])", out)
}

func TestRedactRecordDefaultKeys(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	out, err := uc.RedactRecord("(;GM[1]PB[Black]PW[White]RE[B+R])")
	require.NoError(t, err)
	assert.Equal(t, "(;GM[1]PB[]PW[]RE[B+R])", out)
}

func TestRedactRecordExplicitKeys(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	out, err := uc.RedactRecord("(;PB[Black]C[secret comment];B[aa]C[another])", "C")
	require.NoError(t, err)
	assert.Equal(t, "(;PB[Black]C[];B[aa]C[])", out)
}

func TestCreateRecordAndFetch(t *testing.T) {
	store := newFakeStore()
	uc := NewRecordUseCase(store)
	ctx := context.Background()

	created, err := uc.CreateRecord(ctx, "(;GM[1]PB[Shusaku]PW[Gennan]DT[1846-09-11]RE[B+2];B[qd])")
	require.NoError(t, err)
	assert.Equal(t, "Shusaku", created.PlayerBlack)
	assert.Equal(t, "Gennan", created.PlayerWhite)
	assert.Equal(t, "1846-09-11", created.Date)
	assert.Equal(t, "B+2", created.Result)
	assert.Equal(t, 2, created.NodeCount)

	fetched, err := uc.GetRecordByPublicKey(ctx, created.RecordKeyPublic)
	require.NoError(t, err)
	assert.Equal(t, created.Sgf, fetched.Sgf)
	// the stored text is the canonical form
	assert.Equal(t, "(;GM[1]PB[Shusaku]PW[Gennan]DT[1846-09-11]RE[B+2];B[qd])", fetched.Sgf)
}

func TestCreateRecordRejectsEmpty(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	_, err := uc.CreateRecord(context.Background(), "   \n")
	assert.ErrorIs(t, err, errors.ErrEmptyRecord)
}

func TestCreateRecordRejectsInvalid(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	_, err := uc.CreateRecord(context.Background(), "(;A[")
	require.Error(t, err)
}

func TestGetRecordUnknownKey(t *testing.T) {
	uc := NewRecordUseCase(newFakeStore())

	_, err := uc.GetRecordByPublicKey(context.Background(), "00000")
	assert.ErrorIs(t, err, errors.ErrRecordNotFound)
}
