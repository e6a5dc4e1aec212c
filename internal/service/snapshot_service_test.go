package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorium-admin-api/internal/models"
)

type fakeFetcher struct {
	reports      []models.Report
	banLearners  []models.BanRecord
	banTeachers  []models.BanRecord
	transactions []models.Transaction
	users        []models.User

	reportsErr error
	usersErr   error
}

func (f *fakeFetcher) Reports(context.Context) ([]models.Report, error) {
	return f.reports, f.reportsErr
}

func (f *fakeFetcher) BanLearners(context.Context) ([]models.BanRecord, error) {
	return f.banLearners, nil
}

func (f *fakeFetcher) BanTeachers(context.Context) ([]models.BanRecord, error) {
	return f.banTeachers, nil
}

func (f *fakeFetcher) PaymentTransactions(context.Context) ([]models.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeFetcher) Users(context.Context) ([]models.User, error) {
	return f.users, f.usersErr
}

func TestSnapshotLoadCollectsAllCollections(t *testing.T) {
	fetcher := &fakeFetcher{
		reports:      []models.Report{{ID: 1}},
		banLearners:  []models.BanRecord{{ID: 2}},
		banTeachers:  []models.BanRecord{{ID: 3}},
		transactions: []models.Transaction{{ID: 4}},
		users:        []models.User{{ID: 5}},
	}
	svc := NewSnapshotService(fetcher, nil, 0, nil)

	snap, cacheHit, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Len(t, snap.Reports, 1)
	assert.Len(t, snap.BanLearners, 1)
	assert.Len(t, snap.BanTeachers, 1)
	assert.Len(t, snap.Transactions, 1)
	assert.Len(t, snap.Users, 1)
}

func TestSnapshotLoadIsAllOrNothing(t *testing.T) {
	fetcher := &fakeFetcher{
		reports:  []models.Report{{ID: 1}},
		usersErr: assert.AnError,
	}
	svc := NewSnapshotService(fetcher, nil, 0, nil)

	snap, _, err := svc.Load(context.Background())
	assert.Nil(t, snap, "no partial snapshot on failure")
	assert.Error(t, err)
}
