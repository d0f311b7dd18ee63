package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// GetForProfile returns the contract only when the profile is one of its parties.
func (r *ContractRepository) GetForProfile(ctx context.Context, id, profileID uint) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", id, profileID, profileID).
		Take(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) ListOpenForProfile(ctx context.Context, profileID uint) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).
		Where("(client_id = ? OR contractor_id = ?) AND status <> ?", profileID, profileID, model.ContractStatusTerminated).
		Order("id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) ListUnpaidJobs(ctx context.Context, profileID uint) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("(contracts.client_id = ? OR contracts.contractor_id = ?)", profileID, profileID).
		Where("contracts.status = ?", model.ContractStatusInProgress).
		Where("(jobs.paid IS NULL OR jobs.paid = ?)", false).
		Order("jobs.id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJobDocument loads a job with its contract and both parties.
func (r *ContractRepository) GetJobDocument(ctx context.Context, jobID uint) (*model.JobDocument, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("Contract.Client").
		Preload("Contract.Contractor").
		Where("id = ?", jobID).
		Take(&job).Error
	if err != nil {
		return nil, err
	}
	if job.Contract == nil || job.Contract.Client == nil || job.Contract.Contractor == nil {
		return nil, gorm.ErrRecordNotFound
	}

	doc := &model.JobDocument{
		Job:        job,
		Contract:   *job.Contract,
		Client:     *job.Contract.Client,
		Contractor: *job.Contract.Contractor,
	}
	doc.Job.Contract = nil
	return doc, nil
}
