package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
	"github.com/nurpe/contracts-service/internal/testutil"
)

func TestGetForProfileHidesForeignContracts(t *testing.T) {
	database := testutil.NewDB(t)
	repo := NewContractRepository(database)
	client := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Wizard", "0")
	stranger := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Fighter", "0")
	contractor := testutil.CreateProfile(t, database, model.ProfileTypeContractor, "Musician", "0")
	contract := testutil.CreateContract(t, database, client, contractor, model.ContractStatusNew)
	ctx := context.Background()

	for _, id := range []uint{client.ID, contractor.ID} {
		found, err := repo.GetForProfile(ctx, contract.ID, id)
		require.NoError(t, err)
		assert.Equal(t, contract.ID, found.ID)
	}

	_, err := repo.GetForProfile(ctx, contract.ID, stranger.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListOpenForProfileSkipsTerminated(t *testing.T) {
	database := testutil.NewDB(t)
	repo := NewContractRepository(database)
	client := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Wizard", "0")
	contractor := testutil.CreateProfile(t, database, model.ProfileTypeContractor, "Musician", "0")
	fresh := testutil.CreateContract(t, database, client, contractor, model.ContractStatusNew)
	active := testutil.CreateContract(t, database, client, contractor, model.ContractStatusInProgress)
	testutil.CreateContract(t, database, client, contractor, model.ContractStatusTerminated)

	contracts, err := repo.ListOpenForProfile(context.Background(), contractor.ID)
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.Equal(t, fresh.ID, contracts[0].ID)
	assert.Equal(t, active.ID, contracts[1].ID)
}

func TestListUnpaidJobsOnActiveContracts(t *testing.T) {
	database := testutil.NewDB(t)
	repo := NewContractRepository(database)
	client := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Wizard", "0")
	contractor := testutil.CreateProfile(t, database, model.ProfileTypeContractor, "Musician", "0")
	active := testutil.CreateContract(t, database, client, contractor, model.ContractStatusInProgress)
	unpaid := testutil.CreateJob(t, database, active, "10")
	testutil.CreatePaidJob(t, database, active, "20", time.Now())
	fresh := testutil.CreateContract(t, database, client, contractor, model.ContractStatusNew)
	testutil.CreateJob(t, database, fresh, "30")

	jobs, err := repo.ListUnpaidJobs(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, unpaid.ID, jobs[0].ID)
}

func TestGetJobDocumentLoadsParties(t *testing.T) {
	database := testutil.NewDB(t)
	repo := NewContractRepository(database)
	client := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Wizard", "0")
	contractor := testutil.CreateProfile(t, database, model.ProfileTypeContractor, "Musician", "0")
	contract := testutil.CreateContract(t, database, client, contractor, model.ContractStatusInProgress)
	job := testutil.CreatePaidJob(t, database, contract, "10", time.Now())

	doc, err := repo.GetJobDocument(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, doc.Job.ID)
	assert.Nil(t, doc.Job.Contract)
	assert.Equal(t, contract.ID, doc.Contract.ID)
	assert.Equal(t, client.ID, doc.Client.ID)
	assert.Equal(t, contractor.ID, doc.Contractor.ID)

	_, err = repo.GetJobDocument(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileGetByID(t *testing.T) {
	database := testutil.NewDB(t)
	repo := NewProfileRepository(database)
	client := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Wizard", "12.50")

	found, err := repo.GetByID(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wizard", found.Profession)
	testutil.RequireAmount(t, "12.5", found.Balance)

	_, err = repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
